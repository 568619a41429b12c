// Package config defines the layered configuration model: the untyped
// Mapping produced by merging environment variables, an optional config file
// and trailing command-line pairs, the Resolver that performs the merge, and
// the Loader/Converter interfaces that keep the resolver agnostic of the file
// format and of the Go binding strategy.
//
// Concrete implementations of the interfaces live in the hcl package.
package config
