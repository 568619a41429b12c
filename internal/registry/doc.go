// Package registry is the glue between compiled modules and the binaries.
//
// Modules register named commands (run by cmd/tool) and named selections
// (run by cmd/select-tool). Each entry carries a factory for its argument
// struct, so the registry can validate at startup that the struct's flag
// names and layered-config keys agree before anything runs.
package registry
