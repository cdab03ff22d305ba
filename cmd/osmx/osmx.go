package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Harvester57/openstreetmap-ng/osmxml/encode"
	"github.com/Harvester57/openstreetmap-ng/osmxml/format"
	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
	"github.com/Harvester57/openstreetmap-ng/osmxml/parse"

	"github.com/scott-cotton/cli"
)

func osmxMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if count(cfg.X, cfg.J, cfg.Y) > 1 {
		return fmt.Errorf("%w: must specify at most one of -x[ml] -j[son] -y[aml]", cli.ErrUsage)
	}
	if err := cfg.loadProfile(); err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readArg reads a file argument, "-" being the command input.
func readArg(cc *cli.Context, arg string) ([]byte, error) {
	var r io.Reader
	if arg != "-" {
		f, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", arg, err)
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", arg, err)
	}
	return d, nil
}

// decodeDoc reads a document in the configured input format.
func (cfg *MainConfig) decodeDoc(d []byte) (*ir.Node, error) {
	if cfg.inFormat() == format.JSONFormat {
		return ir.FromJSON(d)
	}
	return parse.Parse(d, cfg.parseOpts()...)
}

func (cfg *MainConfig) readDoc(cc *cli.Context, arg string) (*ir.Node, error) {
	d, err := readArg(cc, arg)
	if err != nil {
		return nil, err
	}
	doc, err := cfg.decodeDoc(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return doc, nil
}

// writeDoc writes doc in the configured output format. Trees that are not
// documents are wrapped in a <result> root for XML.
func (cfg *MainConfig) writeDoc(w io.Writer, doc *ir.Node) error {
	if cfg.Y {
		d, err := ir.ToYAML(doc)
		if err != nil {
			return fmt.Errorf("error encoding yaml: %w", err)
		}
		_, err = w.Write(d)
		return err
	}
	if cfg.outFormat().IsMarkup() {
		if _, _, err := doc.Root(); err != nil || isRepeatedRoot(doc) {
			doc = resultDoc(doc)
		}
	}
	if err := encode.Encode(doc, w, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func isRepeatedRoot(doc *ir.Node) bool {
	c := doc.Values[0]
	return c != nil && c.Type == ir.ArrayType && len(c.Values) > 1
}

func resultDoc(v *ir.Node) *ir.Node {
	if v != nil && v.Type == ir.ArrayType {
		return ir.NewDocument("result", ir.FromKeyVals([]ir.KeyVal{{Key: "item", Val: v}}))
	}
	return ir.NewDocument("result", v)
}

func writeSep(w io.Writer) error {
	_, err := w.Write([]byte("\n"))
	return err
}

// inputs defaults an empty argument list to the command input.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
