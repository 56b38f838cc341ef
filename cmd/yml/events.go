package main

import (
	"io"

	json "github.com/goccy/go-json"
	"github.com/scott-cotton/cli"

	"github.com/signadot/go-yml/stream"
)

// jsonLines writes each event as a line of json.
type jsonLines struct {
	w io.Writer
}

func (j *jsonLines) WriteEvent(e *stream.Event) error {
	d, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = j.w.Write(append(d, '\n'))
	return err
}

func events(cfg *EventsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Events.Parse(cc, args)
	if err != nil {
		cfg.Events.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	sink := &jsonLines{w: cc.Out}
	return eachInput(cc, args, func(_ string, r io.Reader) error {
		var src stream.EventReader = stream.NewReader(r)
		if cfg.Node {
			src = stream.NewNodeReader(r)
		}
		return stream.Copy(sink, src)
	})
}
