// Package pnnx implements the static graph intermediate representation of a
// pnnx model bundle: operators (nodes), operands (edges with producer and
// consumer linkage), scalar parameters and raw weight attributes, together
// with the .param text codec and the bundle load/save paths.
package pnnx
