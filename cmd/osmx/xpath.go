package main

import (
	"bytes"
	"fmt"

	"github.com/Harvester57/openstreetmap-ng/osmxml/format"
	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
	"github.com/Harvester57/openstreetmap-ng/osmxml/parse"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/scott-cotton/cli"
)

func xpathCmd(cfg *XPathConfig, cc *cli.Context, args []string) error {
	args, err := cfg.XPath.Parse(cc, args)
	if err != nil {
		cfg.XPath.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: xpath requires one argument, an expression", cli.ErrUsage)
	}
	if cfg.inFormat() != format.XMLFormat {
		return fmt.Errorf("%w: xpath only reads xml", cli.ErrUsage)
	}
	src := args[0]
	if _, err := xpath.Compile(src); err != nil {
		return fmt.Errorf("%w: invalid xpath: %w", cli.ErrUsage, err)
	}
	n := 0
	for _, arg := range inputs(args[1:]) {
		d, err := readArg(cc, arg)
		if err != nil {
			return err
		}
		matches, err := selectXML(d, src, cfg.First)
		if err != nil {
			return fmt.Errorf("error querying %s: %w", arg, err)
		}
		for _, m := range matches {
			if cfg.Text {
				if _, err := fmt.Fprintln(cc.Out, m.InnerText()); err != nil {
					return err
				}
				continue
			}
			doc, err := cfg.matchDoc(m)
			if err != nil {
				return fmt.Errorf("error decoding match in %s: %w", arg, err)
			}
			if n > 0 {
				if err := writeSep(cc.Out); err != nil {
					return err
				}
			}
			if err := cfg.writeDoc(cc.Out, doc); err != nil {
				return err
			}
			n++
		}
	}
	return nil
}

func selectXML(d []byte, src string, first bool) ([]*xmlquery.Node, error) {
	root, err := xmlquery.Parse(bytes.NewReader(d))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	if !first {
		return xmlquery.QueryAll(root, src)
	}
	m, err := xmlquery.Query(root, src)
	if err != nil || m == nil {
		return nil, err
	}
	return []*xmlquery.Node{m}, nil
}

// matchDoc decodes a selected element as a document of its own. Other
// matches such as attributes become their text.
func (cfg *MainConfig) matchDoc(m *xmlquery.Node) (*ir.Node, error) {
	if m.Type != xmlquery.ElementNode {
		return ir.FromString(m.InnerText()), nil
	}
	return parse.ParseString(m.OutputXML(true), cfg.parseOpts()...)
}
