package linter

// collector accumulates diagnostics in arrival order, enforcing the
// per-file cap. Arrival order is traversal order, which makes output
// deterministic across runs.
type collector struct {
	diags []Diagnostic
	max   int
}

func newCollector(max int) *collector {
	return &collector{max: max}
}

func (c *collector) add(diags ...Diagnostic) {
	for _, d := range diags {
		if c.max > 0 && len(c.diags) >= c.max {
			return
		}
		c.diags = append(c.diags, d)
	}
}

func (c *collector) diagnostics() []Diagnostic {
	return c.diags
}
