package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/linter/rules"
	"github.com/platinummonkey/pslint/pkg/observability"
)

func newTestServer(t *testing.T, opts ...ServerOption) *Server {
	t.Helper()
	registry := rules.NewDefaultRegistry()
	engine := linter.NewEngine(registry)
	runner := linter.NewRunner(engine, linter.DefaultConfig())
	logger := observability.NewLogger(observability.ErrorLevel, os.Stderr)
	return NewServer(registry, runner, logger, opts...)
}

func postLint(t *testing.T, s *Server, req LintRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	r := httptest.NewRequest("POST", "/api/v1/lint", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, r)
	return rr
}

func TestLintContent(t *testing.T) {
	s := newTestServer(t)

	rr := postLint(t, s, LintRequest{Content: "function bad-name {\n}\n"})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp LintResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotNil(t, resp.Result)

	require.Len(t, resp.Result.Diagnostics, 1)
	d := resp.Result.Diagnostics[0]
	assert.Equal(t, "function-naming", d.Rule)
	assert.Equal(t, "input.ps1", d.Span.File)
}

func TestLintContentCustomFilename(t *testing.T) {
	s := newTestServer(t)

	rr := postLint(t, s, LintRequest{Content: "function bad-name {\n}\n", Filename: "deploy.ps1"})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp LintResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotNil(t, resp.Result)
	require.NotEmpty(t, resp.Result.Diagnostics)
	assert.Equal(t, "deploy.ps1", resp.Result.Diagnostics[0].Span.File)
}

func TestLintCleanContent(t *testing.T) {
	s := newTestServer(t)

	rr := postLint(t, s, LintRequest{Content: "Get-Item\n"})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp LintResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotNil(t, resp.Result)
	assert.Empty(t, resp.Result.Diagnostics)
}

func TestLintValidation(t *testing.T) {
	s := newTestServer(t)

	t.Run("empty request", func(t *testing.T) {
		rr := postLint(t, s, LintRequest{})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("content and paths together", func(t *testing.T) {
		rr := postLint(t, s, LintRequest{Content: "Get-Item\n", Paths: []string{"a.ps1"}})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/v1/lint", bytes.NewReader([]byte("{not json")))
		r.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, r)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("wrong content type", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/v1/lint", bytes.NewReader([]byte("{}")))
		r.Header.Set("Content-Type", "text/plain")
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, r)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLintPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.ps1"), []byte("function bad-name {\n}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.ps1"), []byte("Get-Item\n"), 0644))

	s := newTestServer(t, WithWorkspace(dir))

	rr := postLint(t, s, LintRequest{Paths: []string{"bad.ps1", "good.ps1"}})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp LintResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Files, 2)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 2, resp.Summary.Files)
	assert.Equal(t, 1, resp.Summary.Diagnostics)
	assert.Equal(t, 1, resp.Summary.Errors)
}

func TestLintPathEscapesWorkspace(t *testing.T) {
	s := newTestServer(t, WithWorkspace(t.TempDir()))

	rr := postLint(t, s, LintRequest{Paths: []string{"../../etc/passwd"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListRules(t *testing.T) {
	s := newTestServer(t)

	r := httptest.NewRequest("GET", "/api/v1/rules", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, r)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Rules []RuleInfo `json:"rules"`
		Count int        `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, len(rules.DefaultRules()), resp.Count)
	assert.Len(t, resp.Rules, resp.Count)
}

func TestGetRule(t *testing.T) {
	s := newTestServer(t)

	t.Run("known rule", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/rules/function-naming", nil)
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, r)
		require.Equal(t, http.StatusOK, rr.Code)

		var info RuleInfo
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&info))
		assert.Equal(t, "function-naming", info.Name)
		assert.Equal(t, "error", info.Severity)
		assert.Contains(t, info.Kinds, "FunctionDefinition")
	})

	t.Run("unknown rule", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/rules/no-such-rule", nil)
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, r)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRequestIDEcho(t *testing.T) {
	s := newTestServer(t)

	r := httptest.NewRequest("GET", "/api/v1/rules", nil)
	r.Header.Set("X-Request-ID", "req-abc")
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, r)

	assert.Equal(t, "req-abc", rr.Header().Get("X-Request-ID"))
}
