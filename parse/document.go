package parse

import (
	"github.com/signadot/go-yml/stream"
	"github.com/signadot/go-yml/token"
	"github.com/signadot/go-yml/yamlerr"
)

type NodeKind int

const (
	ScalarNode NodeKind = iota
	SequenceNode
	MappingNode
	AliasNode
)

func (k NodeKind) String() string {
	switch k {
	case ScalarNode:
		return "scalar"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	case AliasNode:
		return "alias"
	default:
		return "<unknown node kind>"
	}
}

// Node is one node of a loaded document.  Children index into the
// document's Nodes; mapping children alternate keys and values.  An
// alias node refers to the node its anchor named through Target.
type Node struct {
	Kind     NodeKind
	Tag      string
	Anchor   string
	Text     string
	Style    stream.ScalarStyle
	Flow     bool
	Mark     token.Mark
	Children []int
	Target   int
}

// Document is a loaded YAML document: an arena of nodes with the root
// at index Root.  Anchors are scoped to the document.
type Document struct {
	Nodes         []Node
	Root          int
	Anchors       map[string]int
	ExplicitStart bool
	ExplicitEnd   bool
	Pos           *token.PosDoc
}

// Empty returns the document of an empty stream: a single empty plain
// scalar, which decodes to null.
func Empty() *Document {
	return &Document{
		Nodes:   []Node{{Kind: ScalarNode, Style: stream.Plain}},
		Anchors: map[string]int{},
	}
}

func (d *Document) Node(i int) *Node {
	return &d.Nodes[i]
}

// Location returns the location of node i for error reporting.
func (d *Document) Location(i int) *yamlerr.Location {
	if i < 0 || i >= len(d.Nodes) {
		return nil
	}
	return yamlerr.At(d.Nodes[i].Mark, d.Pos)
}

func (d *Document) push(n Node) int {
	d.Nodes = append(d.Nodes, n)
	return len(d.Nodes) - 1
}
