package encode

import "github.com/signadot/go-yml/stream"

type encOpts struct {
	variantTags bool
	tagUnit     bool
	writer      []stream.WriterOption
}

type EncodeOption func(*encOpts)

func newEncOpts(opts []EncodeOption) *encOpts {
	res := &encOpts{}
	for _, f := range opts {
		f(res)
	}
	return res
}

// VariantTags writes data carrying enum variants as "!Name payload"
// instead of singleton maps.
func VariantTags(v bool) EncodeOption {
	return func(o *encOpts) { o.variantTags = v }
}

// TagUnitVariants writes unit variants as "!Name" instead of "Name".
func TagUnitVariants(v bool) EncodeOption {
	return func(o *encOpts) { o.tagUnit = v }
}

func Indent(n int) EncodeOption {
	return WriterOptions(stream.WithIndent(n))
}
func DocumentStart(v bool) EncodeOption {
	return WriterOptions(stream.WithDocumentStart(v))
}
func DocumentEnd(v bool) EncodeOption {
	return WriterOptions(stream.WithDocumentEnd(v))
}
func Flow(v bool) EncodeOption {
	return WriterOptions(stream.WithFlow(v))
}
func Colors(c *stream.Colors) EncodeOption {
	return WriterOptions(stream.WithColors(c))
}

// WriterOptions passes options to the text writer made by NewWriter.
// They have no effect on an Encoder over another sink.
func WriterOptions(opts ...stream.WriterOption) EncodeOption {
	return func(o *encOpts) { o.writer = append(o.writer, opts...) }
}
