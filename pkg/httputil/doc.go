// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Overview
//
// This package offers helper functions for JSON encoding/decoding, error responses,
// parameter parsing, validation, and common HTTP middleware patterns.
//
// # Response Helpers
//
// JSON responses:
//
//	httputil.WriteJSON(w, http.StatusOK, data)
//	httputil.WriteJSONOrError(w, http.StatusOK, data, "encode lint response")
//	httputil.WriteNoContent(w)
//
// Error responses:
//
//	httputil.WriteError(w, http.StatusBadRequest, err)
//	httputil.WriteBadRequest(w, "Invalid input")
//	httputil.WriteNotFoundError(w, "unknown rule")
//	httputil.WriteInternalError(w, err)
//
// # Request Parsing
//
// JSON parsing:
//
//	var req LintRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // Error response already written
//	}
//
// Query parameters:
//
//	format := httputil.ParseQueryString(r, "format", "text")
//	verbose, err := httputil.ParseQueryBool(r, "verbose", false)
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RecoveryMiddleware,
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware,
//		httputil.ContentTypeMiddleware,
//		httputil.MaxBytesMiddleware(10*1024*1024), // 10MB
//		httputil.TimeoutMiddleware(60*time.Second),
//	)
//
// # Related Packages
//
//   - pkg/api: Uses these helpers in the lint API handlers
//   - pkg/observability: Supplies request ID context propagation
package httputil
