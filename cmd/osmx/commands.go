package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: xml/x, json/j",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: xml/x, json/j",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "osmx").
		WithSynopsis("osmx [opts] command [opts]").
		WithDescription("osmx is a tool for working with OpenStreetMap API documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return osmxMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			GetCommand(cfg),
			ListCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			QueryCommand(cfg),
			XPathCommand(cfg),
			ChangesCommand(cfg),
			ProfileCommand(cfg),
			ServeCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("view").
		WithAliases("v", "convert").
		WithSynopsis("view [files]").
		WithDescription("view or convert documents, optionally in color").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithSynopsis("get <path> [files]").
		WithDescription("get the value at a path such as .osm.node[0].'@id'").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l").
		WithSynopsis("list <path> [files]").
		WithDescription("list the values matching a path such as ..tag[*]").
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithOpts(opts...).
		WithSynopsis("diff a b or diff -rt file").
		WithDescription("diff the normalized renderings of two documents, or of a document and its re-parse").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p").
		WithSynopsis("patch [opts] <json-patch> [files]").
		WithDescription("apply an RFC 6902 JSON patch to the plain-structured form of documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Query, "query").
		WithAliases("q").
		WithSynopsis("query <expr> [files]").
		WithDescription(queryDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return query(cfg, cc, args)
		})
}

const queryDescription = `query evaluates an expr-lang expression against each document.

The document's root tag is bound as a variable holding its plain values.
Children kept in document order are grouped by tag:

  osmx query 'len(osm.node)' map.xml
  osmx query 'map(osm.node, {#["@id"]})' map.xml`

func XPathCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &XPathConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.XPath, "xpath").
		WithAliases("x").
		WithSynopsis("xpath [opts] <expr> [files]").
		WithDescription("select elements of XML documents with XPath").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return xpathCmd(cfg, cc, args)
		})
}

func ChangesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ChangesConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Changes, "changes").
		WithAliases("ch").
		WithSynopsis("changes [-changeset id] [files]").
		WithDescription("decode osmChange documents and write them back normalized").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return changes(cfg, cc, args)
		})
}

func ProfileCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ProfileConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Profile, "profile").
		WithSynopsis("profile").
		WithDescription("print the parse profile in use as TOML").
		WithRun(func(cc *cli.Context, args []string) error {
			return showProfile(cfg, cc, args)
		})
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg, Addr: ":8080"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithAliases("s").
		WithSynopsis("serve [-addr host:port]").
		WithDescription("serve the 0.6 element and upload endpoints from an in-memory store").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}
