// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recoverer catches panics in downstream handlers, logs the stack trace,
// and answers with a generic 500 JSON body instead of crashing the server.
// http.ErrAbortHandler is re-panicked so net/http can abort the response.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.Error("panic recovered",
				"error", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", RequestID(r.Context()),
				"stack", string(debug.Stack()),
			)
			WriteMessage(w, http.StatusInternalServerError, MsgServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
