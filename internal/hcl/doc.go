// Package hcl provides the concrete HCL implementation of the tables.Loader
// interface. It parses table files with hclparse, evaluates their
// expressions in an EvalContext offering a small function library, decodes
// them with gohcl and cty, and merges the result over the embedded built-in
// tables.
package hcl
