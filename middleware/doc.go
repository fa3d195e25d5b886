// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms). Request IDs are random UUIDs.

# CSRF Protection

Wrap the whole mux:

	handler := middleware.CSRF(mux)

Every response carries a csrftoken cookie. POST and other unsafe methods
must echo it in the csrfmiddlewaretoken form field or the X-CSRFToken
header, otherwise the request is rejected with 403. Handlers read the
token for their forms with:

	token := middleware.CSRFToken(r)

# JSON Helpers

Detect JSON clients and write JSON responses:

	if middleware.WantsJSON(r) {
		middleware.JSONResponse(w, http.StatusOK, data)
	}
	middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")

Parse JSON request bodies:

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		...
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
