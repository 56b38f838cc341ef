package parse

// Source selects the event source used by the byte oriented entry
// points.
type Source int

const (
	// ASTSource parses with goccy/go-yaml.
	ASTSource Source = iota
	// NodeSource parses with gopkg.in/yaml.v3, one document at a time.
	NodeSource
)

func (s Source) String() string {
	switch s {
	case ASTSource:
		return "ast"
	case NodeSource:
		return "node"
	default:
		return "<unknown source>"
	}
}

// DefaultRecursionLimit bounds the nesting depth of loaded documents.
const DefaultRecursionLimit = 128

type parseOpts struct {
	limit     int
	source    Source
	positions bool
}

func newParseOpts(opts []ParseOption) *parseOpts {
	res := &parseOpts{limit: DefaultRecursionLimit, positions: true}
	for _, f := range opts {
		f(res)
	}
	return res
}

type ParseOption func(*parseOpts)

func ParseRecursionLimit(n int) ParseOption {
	return func(o *parseOpts) { o.limit = n }
}
func ParseSource(s Source) ParseOption {
	return func(o *parseOpts) { o.source = s }
}

// ParsePositions controls whether documents keep the input so that
// errors can show a snippet of it.  It is on by default.
func ParsePositions(v bool) ParseOption {
	return func(o *parseOpts) { o.positions = v }
}
