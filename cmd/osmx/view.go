package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return viewFiles(cfg, cc, cc.Out, inputs(args))
}

func viewFiles(cfg *ViewConfig, cc *cli.Context, w io.Writer, files []string) error {
	for i, file := range files {
		doc, err := cfg.readDoc(cc, file)
		if err != nil {
			return err
		}
		if i > 0 {
			if err := writeSep(w); err != nil {
				return err
			}
		}
		if err := cfg.writeDoc(w, doc); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return nil
}
