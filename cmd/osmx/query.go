package main

import (
	"fmt"

	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"

	"github.com/expr-lang/expr"
	"github.com/scott-cotton/cli"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires one argument, an expression", cli.ErrUsage)
	}
	src := args[0]
	for i, arg := range inputs(args[1:]) {
		doc, err := cfg.readDoc(cc, arg)
		if err != nil {
			return err
		}
		res, err := evalExpr(src, doc)
		if err != nil {
			return fmt.Errorf("error evaluating %q on %s: %w", src, arg, err)
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

func evalExpr(src string, doc *ir.Node) (*ir.Node, error) {
	v, err := queryValue(doc)
	if err != nil {
		return nil, err
	}
	env, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("cannot query a %s", doc.Type)
	}
	prg, err := expr.Compile(src, expr.Env(env))
	if err != nil {
		return nil, err
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return nil, err
	}
	return ir.FromAny(res)
}

// queryValue is ir.ToAny except that sequences become mappings from each
// child tag to the list of its values, so osm.node works whether or not
// <osm> keeps document order.
func queryValue(y *ir.Node) (any, error) {
	if y == nil {
		return nil, nil
	}
	switch y.Type {
	case ir.SequenceType:
		res := make(map[string]any)
		for i, f := range y.Fields {
			v, err := queryValue(y.Values[i])
			if err != nil {
				return nil, err
			}
			if ir.IsAttr(f) || f == ir.TextKey {
				res[f] = v
				continue
			}
			vs, _ := res[f].([]any)
			res[f] = append(vs, v)
		}
		return res, nil
	case ir.ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			v, err := queryValue(y.Values[i])
			if err != nil {
				return nil, err
			}
			res[f] = v
		}
		return res, nil
	case ir.ArrayType:
		res := make([]any, len(y.Values))
		for i, e := range y.Values {
			v, err := queryValue(e)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	}
	return ir.ToAny(y)
}
