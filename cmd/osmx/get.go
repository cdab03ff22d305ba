package main

import (
	"fmt"
	"io"

	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, an object path", cli.ErrUsage)
	}
	path, err := queryPath(args[0])
	if err != nil {
		return err
	}
	for i, arg := range inputs(args[1:]) {
		if err := queryArg(cfg.MainConfig, cc, cc.Out, arg, path, false, i > 0); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, path, err)
		}
	}
	return nil
}

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: list requires one argument, an object path", cli.ErrUsage)
	}
	path, err := queryPath(args[0])
	if err != nil {
		return err
	}
	for i, arg := range inputs(args[1:]) {
		if err := queryArg(cfg.MainConfig, cc, cc.Out, arg, path, true, i > 0); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, path, err)
		}
	}
	return nil
}

func queryPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: invalid query \"\"", cli.ErrUsage)
	}
	if path[0] != '$' {
		path = "$" + path
	}
	return path, nil
}

func queryArg(cfg *MainConfig, cc *cli.Context, w io.Writer, arg, query string, list, sep bool) error {
	target, err := cfg.readDoc(cc, arg)
	if err != nil {
		return err
	}
	var res *ir.Node
	if list {
		vs, err := target.ListPath(nil, query)
		if err != nil {
			return fmt.Errorf("error executing list on %s: %w", arg, err)
		}
		res = ir.FromSlice(vs)
	} else {
		res, err = target.GetPath(query)
		if err != nil {
			return fmt.Errorf("error executing get on %s: %w", arg, err)
		}
		if res == nil {
			// nothing at the path
			return nil
		}
	}
	if sep {
		if err := writeSep(w); err != nil {
			return err
		}
	}
	return cfg.writeDoc(w, res)
}
