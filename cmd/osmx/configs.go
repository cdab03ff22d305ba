package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Harvester57/openstreetmap-ng/osmxml/encode"
	"github.com/Harvester57/openstreetmap-ng/osmxml/format"
	"github.com/Harvester57/openstreetmap-ng/osmxml/parse"
	"github.com/Harvester57/openstreetmap-ng/osmxml/profile"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='encode with color'"`
	Indent int  `cli:"name=indent desc='indent nested elements by n spaces'"`

	X bool `cli:"name=x aliases=xml desc='do i/o in xml'"`
	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`

	ProfileFile string `cli:"name=p aliases=profile desc='TOML parse profile'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command

	profile *profile.Profile
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) loadProfile() error {
	if cfg.ProfileFile == "" {
		cfg.profile = profile.Default()
		return nil
	}
	p, err := profile.Load(cfg.ProfileFile)
	if err != nil {
		return err
	}
	cfg.profile = p
	return nil
}

func (cfg *MainConfig) inFormat() format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	if cfg.J {
		return format.JSONFormat
	}
	return format.XMLFormat
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if cfg.J {
		return format.JSONFormat
	}
	return format.XMLFormat
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	p := cfg.profile
	if p == nil {
		p = profile.Default()
	}
	return []parse.ParseOption{parse.WithProfile(p), parse.NoLimit()}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.Indent(cfg.Indent),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	if cfg.colorSet() {
		return res
	}
	if isTerminal(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colorSet reports whether -color was given on the command line, even as
// false.
func (cfg *MainConfig) colorSet() bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		return opt.Value != nil
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type ListConfig struct {
	*MainConfig

	List *cli.Command
}

type DiffConfig struct {
	*MainConfig
	RoundTrip bool `cli:"name=rt aliases=roundtrip desc='diff a document against its re-parse'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	String bool `cli:"name=s desc='patch arg as string'"`

	Patch *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Query *cli.Command
}

type XPathConfig struct {
	*MainConfig
	First bool `cli:"name=first desc='only the first match'"`
	Text  bool `cli:"name=t aliases=text desc='print the text of matches'"`

	XPath *cli.Command
}

type ChangesConfig struct {
	*MainConfig
	Changeset int  `cli:"name=changeset desc='stamp elements with this changeset id'"`
	Summary   bool `cli:"name=summary desc='only log the number of elements per action'"`

	Changes *cli.Command
}

type ProfileConfig struct {
	*MainConfig

	Profile *cli.Command
}

type ServeConfig struct {
	*MainConfig
	Addr      string `cli:"name=addr desc='listen address'"`
	MaxBody   string `cli:"name=max-body desc='request body limit such as 50MiB'"`
	Generator string `cli:"name=generator desc='generator written into responses'"`

	Serve *cli.Command
}
