package linter

import (
	"errors"
	"fmt"

	"github.com/platinummonkey/pslint/pkg/script"
)

// ErrDuplicateRule is returned by Registry.Register when a rule name is
// already taken. Registration happens at startup, so callers treat this
// as fatal.
var ErrDuplicateRule = errors.New("duplicate rule name")

// ErrFileUnavailable is returned by the text index when source text for a
// path cannot be read. Rules treat it as "skip this check": no diagnostic,
// no fault.
var ErrFileUnavailable = errors.New("file text unavailable")

// RuleFault records a rule invocation that panicked or returned an error.
// Faults are collected alongside diagnostics but never become diagnostics
// and never abort a traversal.
type RuleFault struct {
	Rule string
	Kind script.NodeKind
	Err  error
}

func (f *RuleFault) Error() string {
	return fmt.Sprintf("rule %s faulted on %s node: %v", f.Rule, f.Kind, f.Err)
}

func (f *RuleFault) Unwrap() error { return f.Err }
