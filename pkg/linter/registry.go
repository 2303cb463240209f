package linter

import (
	"fmt"

	"github.com/platinummonkey/pslint/pkg/script"
)

// Rule is a single lint check. A rule declares the node kinds it wants to
// see; the engine invokes Check once per matching node. Check returns zero
// or more diagnostics, or an error when the rule itself failed (the engine
// records that as a RuleFault, not a diagnostic). Rules must be safe for
// concurrent use: the runner lints files in parallel against one registry.
type Rule interface {
	Name() string
	Kinds() []script.NodeKind
	Severity() Severity
	Description() string
	Check(node script.Node, ctx *Context) ([]Diagnostic, error)
}

// Registry holds the rule set, indexed by node kind. It is populated at
// startup and read-only afterwards, so lookups need no locking.
type Registry struct {
	byKind map[script.NodeKind][]Rule
	byName map[string]Rule
	all    []Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKind: make(map[script.NodeKind][]Rule),
		byName: make(map[string]Rule),
	}
}

// Register adds a rule. Rules are dispatched in registration order, which
// fixes the order of diagnostics within a node. Reusing a name fails with
// ErrDuplicateRule.
func (r *Registry) Register(rule Rule) error {
	name := rule.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, name)
	}
	r.byName[name] = rule
	r.all = append(r.all, rule)
	for _, kind := range rule.Kinds() {
		r.byKind[kind] = append(r.byKind[kind], rule)
	}
	return nil
}

// MustRegister registers rules and panics on failure. For wiring the
// built-in rule set at startup.
func (r *Registry) MustRegister(rules ...Rule) {
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			panic(err)
		}
	}
}

// RulesFor returns the rules subscribed to kind, in registration order.
// The returned slice must not be modified.
func (r *Registry) RulesFor(kind script.NodeKind) []Rule {
	return r.byKind[kind]
}

// Get returns the named rule, or nil.
func (r *Registry) Get(name string) Rule {
	return r.byName[name]
}

// All returns every registered rule in registration order.
func (r *Registry) All() []Rule {
	return r.all
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.all)
}
