// Package token holds the lexical rules shared by the loader, decoder and
// encoder: source positions ([Mark], [PosDoc]), plain scalar typing
// ([Resolve]), number formatting ([FormatFloat]) and the quoting
// decisions that keep emitted strings from being read back as other types.
package token
