package main

import (
	"fmt"
	"net/http"

	"github.com/Harvester57/openstreetmap-ng/osmxml/api"

	"github.com/dustin/go-humanize"
	"github.com/scott-cotton/cli"
)

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Serve.Parse(cc, args); err != nil {
		return err
	}
	spec := &api.Spec{
		Log:       theLog,
		Profile:   cfg.profile,
		Generator: cfg.Generator,
	}
	if cfg.MaxBody != "" {
		n, err := humanize.ParseBytes(cfg.MaxBody)
		if err != nil {
			return fmt.Errorf("%w: -max-body: %w", cli.ErrUsage, err)
		}
		spec.MaxBodySize = int64(n)
	}
	a := api.New(spec)
	theLog.Info("starting server", "addr", cfg.Addr, "max-body", humanize.IBytes(uint64(a.Spec.MaxBodySize)))
	return http.ListenAndServe(cfg.Addr, a.Handler())
}
