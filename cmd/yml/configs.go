package main

import (
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	yml "github.com/signadot/go-yml"
	"github.com/signadot/go-yml/encode"
	"github.com/signadot/go-yml/parse"
	"github.com/signadot/go-yml/stream"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	Flow    bool `cli:"name=flow desc='encode collections in flow style'"`
	Indent  int  `cli:"name=indent desc='indentation width of block collections'"`
	Start   bool `cli:"name=start desc='write --- before every document'"`
	End     bool `cli:"name=end desc='write ... after every document'"`
	Core    bool `cli:"name=core desc='resolve only true and false as booleans'"`
	Merge   bool `cli:"name=merge desc='apply <<: merge keys'"`
	Node    bool `cli:"name=node desc='parse with the yaml.v3 node parser'"`
	Verbose bool `cli:"name=v desc='log progress to stderr'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	if cfg.Node {
		return []parse.ParseOption{parse.ParseSource(parse.NodeSource)}
	}
	return nil
}

func (cfg *MainConfig) ymlOpts(w io.Writer) []yml.Option {
	res := []yml.Option{
		yml.ParseOptions(cfg.parseOpts()...),
		yml.EncodeOptions(cfg.encOpts(w)...),
	}
	if cfg.Core {
		res = append(res, yml.CoreBools())
	}
	if cfg.Merge {
		res = append(res, yml.MergeKeys())
	}
	return res
}

// layoutOpts are the encode options without colors.
func (cfg *MainConfig) layoutOpts() []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.Flow(cfg.Flow),
		encode.DocumentStart(cfg.Start),
		encode.DocumentEnd(cfg.End),
	}
	if cfg.Indent > 0 {
		res = append(res, encode.Indent(cfg.Indent))
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := cfg.layoutOpts()
	if cfg.Color {
		res = append(res, encode.Colors(stream.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	if colorTerminal(w) {
		res = append(res, encode.Colors(stream.NewColors()))
	}
	return res
}

func colorTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) logf(msg string, args ...any) {
	if cfg.Verbose {
		theLog.Info(msg, args...)
	}
}

type LoadConfig struct {
	*MainConfig
	Stream bool `cli:"name=stream desc='decode one document at a time from the input stream'"`
	Tags   bool `cli:"name=tags desc='rewrite single entry maps as tagged values'"`
	Maps   bool `cli:"name=maps desc='rewrite tagged values as single entry maps'"`

	Load *cli.Command
}

type EventsConfig struct {
	*MainConfig

	Events *cli.Command
}

type IRConfig struct {
	*MainConfig

	IR *cli.Command
}

type GetConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='print nothing, exit 1 if any result is empty or false'"`

	Get *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig

	Patch *cli.Command
}
