// Package ir provides the generic YAML value model: a tagged union of
// null, bool, number, string, sequence, mapping and tagged values, with
// ordered mappings, structural equality, a total order and hashing.
package ir
