// Package selection routes namespaced trailing arguments to argument structs.
//
// A command line such as
//
//	tool --add --multiply -- --add.left 1 --add.right 2 --multiply.left 3
//
// enables the "add" and "multiply" selections. Partition extracts the tokens
// addressed to each one ("--left 1 --right 2" and "--left 3") and the
// Selector parses them into the struct bound to that selection. Several
// selections can be active at once; tokens addressed to nothing are ignored.
package selection
