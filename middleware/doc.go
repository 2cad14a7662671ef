// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Logging is chi-compatible middleware:

	r := chi.NewRouter()
	r.Use(middleware.Logging)

Each completed request is logged through the global zap logger with its
request ID, method, path, status, bytes written and duration.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(r),
	}

Allows methods GET, POST, PATCH, DELETE, OPTIONS with headers
Content-Type, Authorization and X-Admin-Key. Content-Disposition is exposed
so browsers can read export filenames.

# Admin Gate

	r.With(middleware.RequireAdmin(cfg.AdminKey)).Get("/admin/summary", h.Summary)

Requests without a matching X-Admin-Key header get 401. With an empty
configured key every request is rejected.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.CodedErrorResponse(w, http.StatusUnprocessableEntity,
		models.CodeValidation, "Please fill in all required fields", fields)

Parse JSON request bodies:

	var req models.UpdateDraftRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
