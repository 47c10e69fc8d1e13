package app

import "errors"

// ErrCompilationFailed is returned by Run when at least one input produced
// error diagnostics. The diagnostics themselves have already been printed.
var ErrCompilationFailed = errors.New("compilation failed")
