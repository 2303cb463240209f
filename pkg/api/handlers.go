package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/pslint/pkg/httputil"
	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/observability"
)

// LintRequest is the POST /api/v1/lint payload. Exactly one of Content or
// Paths must be set: Content lints an inline script, Paths lints files
// under the server's workspace.
type LintRequest struct {
	Content  string   `json:"content,omitempty"`
	Filename string   `json:"filename,omitempty"`
	Paths    []string `json:"paths,omitempty"`
}

// LintResponse is the lint endpoint response.
type LintResponse struct {
	Result  *linter.Result   `json:"result,omitempty"`
	Files   []FileLintResult `json:"files,omitempty"`
	Summary *linter.Summary  `json:"summary,omitempty"`
}

// FileLintResult is a per-file result with the error flattened to a
// string for JSON transport.
type FileLintResult struct {
	Path   string         `json:"path"`
	Result *linter.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// RuleInfo describes one registered rule.
type RuleInfo struct {
	Name        string   `json:"name"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	Kinds       []string `json:"kinds"`
}

// lint handles POST /api/v1/lint
func (s *Server) lint(w http.ResponseWriter, r *http.Request) {
	logger := observability.UpdateLoggerWithTraceContext(r.Context(), observability.FromContext(r.Context()))

	var req LintRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.Content == "" && len(req.Paths) == 0 {
		httputil.WriteBadRequest(w, "either content or paths must be provided")
		return
	}
	if req.Content != "" && len(req.Paths) > 0 {
		httputil.WriteBadRequest(w, "content and paths are mutually exclusive")
		return
	}

	start := time.Now()

	if req.Content != "" {
		name := req.Filename
		if name == "" {
			name = "input.ps1"
		}
		result, err := s.runner.LintSource(r.Context(), name, req.Content)
		if err != nil {
			logger.WithError(err).Error("inline lint failed")
			httputil.WriteInternalError(w, err)
			return
		}
		s.recordLintRun("content", start, err == nil)
		httputil.WriteJSONOrError(w, http.StatusOK, LintResponse{Result: result}, "encode lint response")
		return
	}

	paths, err := s.resolvePaths(req.Paths)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	results, err := s.runner.LintFiles(r.Context(), paths)
	if err != nil {
		logger.WithError(err).Error("file lint failed")
		httputil.WriteInternalError(w, err)
		return
	}
	s.recordLintRun("paths", start, true)

	summary := linter.Summarize(results)
	resp := LintResponse{Summary: &summary}
	for _, fr := range results {
		out := FileLintResult{Path: fr.Path, Result: fr.Result}
		if fr.Err != nil {
			out.Error = fr.Err.Error()
		}
		resp.Files = append(resp.Files, out)
	}
	httputil.WriteJSONOrError(w, http.StatusOK, resp, "encode lint response")
}

// resolvePaths maps request paths into the workspace and rejects any that
// escape it.
func (s *Server) resolvePaths(paths []string) ([]string, error) {
	root, err := filepath.Abs(s.workspace)
	if err != nil {
		return nil, err
	}
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		full := filepath.Clean(filepath.Join(root, p))
		if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
			return nil, fmt.Errorf("path outside workspace: %s", p)
		}
		resolved = append(resolved, full)
	}
	return resolved, nil
}

// listRules handles GET /api/v1/rules
func (s *Server) listRules(w http.ResponseWriter, r *http.Request) {
	rules := s.registry.All()
	infos := make([]RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo(rule))
	}
	httputil.WriteJSONOrError(w, http.StatusOK, map[string]interface{}{
		"rules": infos,
		"count": len(infos),
	}, "encode rules response")
}

// getRule handles GET /api/v1/rules/{name}
func (s *Server) getRule(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	rule := s.registry.Get(name)
	if rule == nil {
		httputil.WriteNotFoundError(w, "unknown rule: "+name)
		return
	}
	httputil.WriteJSONOrError(w, http.StatusOK, ruleInfo(rule), "encode rule response")
}

func ruleInfo(rule linter.Rule) RuleInfo {
	kinds := make([]string, 0, len(rule.Kinds()))
	for _, k := range rule.Kinds() {
		kinds = append(kinds, k.String())
	}
	return RuleInfo{
		Name:        rule.Name(),
		Severity:    string(rule.Severity()),
		Description: rule.Description(),
		Kinds:       kinds,
	}
}

func (s *Server) recordLintRun(source string, start time.Time, ok bool) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	s.metrics.LintRunsTotal.WithLabelValues(status).Inc()
	s.metrics.LintRunDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}
