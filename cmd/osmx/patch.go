package main

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch argument", cli.ErrUsage)
	}
	ops, err := getPatch(cfg, cc, args[0])
	if err != nil {
		return err
	}
	for i, arg := range inputs(args[1:]) {
		doc, err := cfg.readDoc(cc, arg)
		if err != nil {
			return err
		}
		res, err := applyPatch(ops, doc)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", arg, err)
		}
		if i > 0 {
			if err := writeSep(cc.Out); err != nil {
				return err
			}
		}
		if err := cfg.writeDoc(cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}

func getPatch(cfg *PatchConfig, cc *cli.Context, arg string) (jsonpatch.Patch, error) {
	d := []byte(arg)
	if !cfg.String {
		var err error
		if d, err = readArg(cc, arg); err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	ops, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid json patch: %w", cli.ErrUsage, err)
	}
	return ops, nil
}

// applyPatch applies ops to the plain-structured form of doc.
func applyPatch(ops jsonpatch.Patch, doc *ir.Node) (*ir.Node, error) {
	d, err := ir.ToJSON(doc)
	if err != nil {
		return nil, err
	}
	d, err = ops.Apply(d)
	if err != nil {
		return nil, err
	}
	res, err := ir.FromJSON(d)
	if err != nil {
		return nil, err
	}
	return restore(doc, res), nil
}

// restore brings back, where res still lines up with orig, what the
// plain-structured form drops: field order, sequences and literal markers.
func restore(orig, res *ir.Node) *ir.Node {
	if orig == nil || res == nil {
		return res
	}
	switch {
	case orig.Type == ir.LiteralType && res.Type == ir.StringType:
		if orig.String == res.String {
			return ir.Literal(res.String)
		}
	case orig.Type == ir.SequenceType && res.Type == ir.ArrayType:
		kvs := make([]ir.KeyVal, len(res.Values))
		for i, v := range res.Values {
			if v == nil || v.Type != ir.ObjectType || len(v.Fields) != 1 {
				return res
			}
			kvs[i] = ir.KeyVal{Key: v.Fields[0], Val: v.Values[0]}
			if i < len(orig.Fields) && orig.Fields[i] == kvs[i].Key {
				kvs[i].Val = restore(orig.Values[i], kvs[i].Val)
			}
		}
		return ir.FromPairs(kvs)
	case orig.Type == ir.ObjectType && res.Type == ir.ObjectType:
		pos := make(map[string]int, len(orig.Fields))
		for i, f := range orig.Fields {
			pos[f] = i
		}
		rank := func(f string) int {
			if i, ok := pos[f]; ok {
				return i
			}
			return len(orig.Fields)
		}
		kvs := res.KeyVals()
		slices.SortStableFunc(kvs, func(a, b ir.KeyVal) int {
			return cmp.Compare(rank(a.Key), rank(b.Key))
		})
		for i := range kvs {
			kvs[i].Val = restore(orig.Get(kvs[i].Key), kvs[i].Val)
		}
		return ir.FromKeyVals(kvs)
	case orig.Type == ir.ArrayType && res.Type == ir.ArrayType:
		for i := range res.Values {
			if i < len(orig.Values) {
				res.Values[i] = restore(orig.Values[i], res.Values[i])
			}
		}
	}
	return res
}
