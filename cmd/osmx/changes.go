package main

import (
	"fmt"

	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
	"github.com/Harvester57/openstreetmap-ng/osmxml/osmchange"

	"github.com/scott-cotton/cli"
)

func changes(cfg *ChangesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Changes.Parse(cc, args)
	if err != nil {
		cfg.Changes.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var opts []osmchange.DecodeOption
	if cfg.Changeset > 0 {
		opts = append(opts, osmchange.WithChangeset(int64(cfg.Changeset)))
	}
	n := 0
	for _, arg := range inputs(args) {
		doc, err := cfg.readDoc(cc, arg)
		if err != nil {
			return err
		}
		chs, err := osmchange.Decode(doc, opts...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		counts := map[osmchange.Action]int{}
		for _, ch := range chs {
			counts[ch.Action] += len(ch.Elements)
		}
		theLog.Info("decoded osmChange", "file", arg,
			"create", counts[osmchange.Create],
			"modify", counts[osmchange.Modify],
			"delete", counts[osmchange.Delete])
		if cfg.Summary {
			continue
		}
		if n > 0 {
			if err := writeSep(cc.Out); err != nil {
				return err
			}
		}
		res := ir.NewDocument("osmChange", osmchange.Encode(osmchange.Elements(chs)))
		if err := cfg.writeDoc(cc.Out, res); err != nil {
			return err
		}
		n++
	}
	return nil
}
