// Package orfile wraps an argument struct in a two-mode command.
//
// In "where" mode every field is given explicitly as a flag:
//
//	tool add where --left 1 --right 2
//
// In "using" mode the struct is assembled from the environment
// (ADD_LEFT=...), an optional config file and free-form pairs after "--":
//
//	tool add using --args-path add.json -- --left 10
//
// Fields need both a `flag` tag (go-struct-flags) and a `cty` tag (the
// layered resolver) to be reachable in both modes.
package orfile
