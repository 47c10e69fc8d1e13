// Package compiler runs the whole pipeline on one source file: parse,
// resolve the geometry, resolve and validate the layers, and emit one
// artifact per backend. Diagnostics from every stage are collected,
// deduplicated and sorted; emission only happens when no stage reported an
// error.
package compiler
