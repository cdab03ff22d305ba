package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Harvester57/openstreetmap-ng/osmxml/encode"
	"github.com/Harvester57/openstreetmap-ng/osmxml/format"
	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
	"github.com/Harvester57/openstreetmap-ng/osmxml/parse"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// unchanged lines shown around each change
const diffContext = 3

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var a, b *ir.Node
	if cfg.RoundTrip {
		if len(args) != 1 {
			return fmt.Errorf("%w: diff -rt requires 1 arg, got %v", cli.ErrUsage, args)
		}
		a, err = cfg.readDoc(cc, args[0])
		if err != nil {
			return err
		}
		b, err = roundTrip(cfg.MainConfig, a)
		if err != nil {
			return fmt.Errorf("error re-parsing %s: %w", args[0], err)
		}
	} else {
		if len(args) != 2 {
			return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
		}
		if a, err = cfg.readDoc(cc, args[0]); err != nil {
			return err
		}
		if b, err = cfg.readDoc(cc, args[1]); err != nil {
			return err
		}
	}
	ra, err := render(a)
	if err != nil {
		return err
	}
	rb, err := render(b)
	if err != nil {
		return err
	}
	lines := diffLines(ra, rb)
	if !hasChanges(lines) {
		return nil
	}
	useColor := cfg.Color || (!cfg.colorSet() && isTerminal(cc.Out))
	if err := writeDiff(cc.Out, lines, useColor); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

// roundTrip encodes doc in the input format and decodes it again.
func roundTrip(cfg *MainConfig, doc *ir.Node) (*ir.Node, error) {
	f := cfg.inFormat()
	d, err := encode.Unparse(doc, encode.EncodeFormat(f))
	if err != nil {
		return nil, err
	}
	if f == format.JSONFormat {
		return ir.FromJSON(d)
	}
	return parse.Parse(d, cfg.parseOpts()...)
}

// render is the line-oriented form documents are compared in.
func render(doc *ir.Node) (string, error) {
	if _, _, err := doc.Root(); err != nil || isRepeatedRoot(doc) {
		doc = resultDoc(doc)
	}
	d, err := encode.Unparse(doc, encode.Indent(2))
	if err != nil {
		return "", err
	}
	return string(d), nil
}

type diffLine struct {
	op   diffpatch.Operation
	text string
}

func diffLines(a, b string) []diffLine {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	var res []diffLine
	for _, d := range diffs {
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			res = append(res, diffLine{op: d.Type, text: strings.TrimSuffix(l, "\n")})
		}
	}
	return res
}

func hasChanges(lines []diffLine) bool {
	for _, l := range lines {
		if l.op != diffpatch.DiffEqual {
			return true
		}
	}
	return false
}

func writeDiff(w io.Writer, lines []diffLine, useColor bool) error {
	del, ins, skip := color.New(color.FgRed), color.New(color.FgGreen), color.New(color.FgCyan)
	for _, c := range []*color.Color{del, ins, skip} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	show := make([]bool, len(lines))
	for i, l := range lines {
		if l.op == diffpatch.DiffEqual {
			continue
		}
		for j := max(0, i-diffContext); j <= min(len(lines)-1, i+diffContext); j++ {
			show[j] = true
		}
	}
	skipped := false
	for i, l := range lines {
		if !show[i] {
			skipped = true
			continue
		}
		var s string
		switch l.op {
		case diffpatch.DiffDelete:
			s = del.Sprint("-" + l.text)
		case diffpatch.DiffInsert:
			s = ins.Sprint("+" + l.text)
		default:
			s = " " + l.text
		}
		if skipped {
			if _, err := fmt.Fprintln(w, skip.Sprint("@@")); err != nil {
				return err
			}
			skipped = false
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
