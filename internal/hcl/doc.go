// Package hcl provides the concrete implementations of the config.Loader and
// config.Converter interfaces. Config files are parsed with hashicorp/hcl
// (native syntax or JSON, chosen by extension) into cty values, and merged
// mappings are bound to tagged Go structs by a reflection-driven converter.
package hcl
