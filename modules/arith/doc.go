// Package arith provides the arithmetic operations shipped with the tools:
// add, multiply, divide, kebab-divide and add-generic.
package arith
