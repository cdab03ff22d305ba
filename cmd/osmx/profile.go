package main

import (
	"github.com/scott-cotton/cli"
)

func showProfile(cfg *ProfileConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Profile.Parse(cc, args); err != nil {
		return err
	}
	return cfg.profile.Encode(cc.Out)
}
