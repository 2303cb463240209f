package linter

import (
	"context"

	"github.com/platinummonkey/pslint/pkg/observability"
	"github.com/platinummonkey/pslint/pkg/script"
)

// Result is the outcome of one engine run over one tree: the diagnostics
// in traversal order, plus any rule faults encountered along the way.
type Result struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	Faults      []RuleFault  `json:"faults,omitempty"`
}

// Engine walks a syntax tree and dispatches each node to the registered
// rules for its kind. The engine itself is stateless between runs and safe
// for concurrent use.
type Engine struct {
	registry *Registry
	config   *Config
	logger   *observability.Logger
	metrics  *observability.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig applies a lint configuration (rule enablement, severity
// overrides, diagnostic caps).
func WithConfig(cfg *Config) Option {
	return func(e *Engine) { e.config = cfg }
}

// WithLogger sets the logger used for rule fault reporting.
func WithLogger(logger *observability.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics enables fault and diagnostic counters.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates an engine over the given registry.
func NewEngine(registry *Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		config:   DefaultConfig(),
		logger:   observability.NewLogger(observability.ErrorLevel, nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run lints the tree rooted at root, reading source text for filePath from
// disk if a rule asks for it. The only error Run returns is context
// cancellation; rule failures surface as Result.Faults.
func (e *Engine) Run(ctx context.Context, root script.Node, filePath string) (*Result, error) {
	return e.RunWithIndex(ctx, root, filePath, NewTextIndex())
}

// RunWithIndex is Run with a caller-supplied text index, letting in-memory
// sources bypass the filesystem.
//
// The walk is pre-order depth-first using an explicit stack: children are
// pushed in reverse so they pop in declared order, and tree depth never
// translates into goroutine stack depth. Cancellation is checked between
// node visits, so an in-flight rule invocation always completes.
func (e *Engine) RunWithIndex(ctx context.Context, root script.Node, filePath string, index *TextIndex) (*Result, error) {
	result := &Result{}
	if root == nil {
		return result, nil
	}

	ruleCtx := NewContext(filePath, e.config, index)
	col := newCollector(e.config.MaxDiagnostics())

	stack := []script.Node{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, rule := range e.registry.RulesFor(node.Kind()) {
			if !e.config.RuleEnabled(rule.Name()) {
				continue
			}
			diags, fault := invokeRule(rule, node, ruleCtx)
			if fault != nil {
				e.recordFault(result, fault)
				continue
			}
			for i := range diags {
				if sev, ok := e.config.SeverityOverride(rule.Name()); ok {
					diags[i].Severity = sev
				}
			}
			col.add(diags...)
		}

		children := node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			if children[i] != nil {
				stack = append(stack, children[i])
			}
		}
	}

	result.Diagnostics = col.diagnostics()
	if e.metrics != nil {
		e.metrics.RecordDiagnostics(filePath, len(result.Diagnostics))
	}
	return result, nil
}

func (e *Engine) recordFault(result *Result, fault *RuleFault) {
	result.Faults = append(result.Faults, *fault)
	if e.logger != nil {
		e.logger.WithField("rule", fault.Rule).
			WithField("node_kind", fault.Kind.String()).
			WithError(fault.Err).
			Error("rule invocation faulted")
	}
	if e.metrics != nil {
		e.metrics.RecordRuleFault(fault.Rule)
	}
}
