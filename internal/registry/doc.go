// Package registry provides the central "glue" for the output format modules.
//
// The Registry maps the format names used by backend tables (for example
// format = "rust") to the compiled Go renderers that implement them. Modules
// register their renderers at startup; the registry is then validated
// against the loaded tables so that a table naming a format no module
// provides is noticed before any layout is compiled.
package registry
