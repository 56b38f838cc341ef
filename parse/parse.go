// Package parse loads YAML event streams into documents: arenas of
// nodes in which aliases refer to the node their anchor names.
package parse

import (
	"bytes"
	"io"

	"github.com/signadot/go-yml/stream"
	"github.com/signadot/go-yml/yamlerr"
)

func source(d []byte, opts *parseOpts) stream.EventReader {
	if opts.source == NodeSource {
		return stream.NewNodeReader(bytes.NewReader(d))
	}
	return stream.NewBytesReader(d)
}

// Parse loads the single document in d.  Empty input yields the empty
// document; input holding more than one document is an error.
func Parse(d []byte, opts ...ParseOption) (*Document, error) {
	o := newParseOpts(opts)
	return single(&Loader{r: source(d, o), opts: o})
}

// ParseReader is Parse over r, reading one document at a time.
func ParseReader(r io.Reader, opts ...ParseOption) (*Document, error) {
	return single(NewLoader(stream.NewNodeReader(r), opts...))
}

// ParseAll loads every document in d.
func ParseAll(d []byte, opts ...ParseOption) ([]*Document, error) {
	o := newParseOpts(opts)
	l := &Loader{r: source(d, o), opts: o}
	var res []*Document
	for doc, err := range l.All() {
		if err != nil {
			return nil, err
		}
		res = append(res, doc)
	}
	return res, nil
}

func single(l *Loader) (*Document, error) {
	doc, err := l.Next()
	if err == io.EOF {
		return Empty(), nil
	}
	if err != nil {
		return nil, err
	}
	_, err = l.Next()
	switch {
	case err == io.EOF:
		return doc, nil
	case err != nil:
		return nil, err
	}
	return nil, yamlerr.New(yamlerr.Message, "deserializing from YAML containing more than one document is not supported")
}
