// Package runtime translates a parsed static graph into execution-ready
// runtime operators.
//
// A RuntimeGraph loads a .param/.bin bundle, then converts every static
// operator into a RuntimeOperator holding runtime operands, weight
// attributes and typed parameters. Output edges are recorded as consumer
// names only; resolving them to operator pointers is a later linking pass
// that belongs to an execution layer, not to this package.
package runtime
