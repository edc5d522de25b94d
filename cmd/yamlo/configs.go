package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/yamlir/encode"
	"github.com/signadot/yamlir/parse"
)

type MainConfig struct {
	Schema string `cli:"name=schema desc='resolution schema: failsafe, json or core' default=core"`
	Color  bool   `cli:"name=color desc='output with color'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.ParseSchema(cfg.Schema)}
}

// colors reports whether output to w should be colored: always with
// -color, otherwise only on a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type TagsConfig struct {
	*MainConfig
	Dups bool `cli:"name=dups desc='mark collections equal to an earlier one'"`

	Tags *cli.Command
}

type ConstructConfig struct {
	*MainConfig
	Spew bool `cli:"name=spew desc='dump values with go-spew instead of json'"`

	Construct *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Canonical bool `cli:"name=canonical desc='canonical output'"`
	Indent    int  `cli:"name=indent desc='indentation width' default=2"`
	Width     int  `cli:"name=width desc='preferred line width'"`
	Sort      bool `cli:"name=sort desc='sort mapping keys'"`
	Start     bool `cli:"name=start desc='write --- before each document'"`
	End       bool `cli:"name=end desc='write ... after each document'"`

	Fmt *cli.Command
}

func (cfg *FmtConfig) encOpts() []encode.EncodeOption {
	return []encode.EncodeOption{
		encode.Canonical(cfg.Canonical),
		encode.Indent(cfg.Indent),
		encode.Width(cfg.Width),
		encode.SortKeys(cfg.Sort),
		encode.ExplicitStart(cfg.Start),
		encode.ExplicitEnd(cfg.End),
	}
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type PatchConfig struct {
	*MainConfig
	File bool `cli:"name=f desc='patch arg is a file path'"`

	Patch *cli.Command
}

type EvalConfig struct {
	*MainConfig

	Eval *cli.Command
}
