package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"depot-rest-api/pkg/apierror"
	"depot-rest-api/pkg/response"
)

// Recovery returns a middleware that recovers from panics and answers with
// the generic 500 envelope.
func Recovery(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic",
						zap.Any("reason", rec),
						zap.ByteString("stack", debug.Stack()),
						zap.String("path", r.URL.Path),
					)
					response.Error(w, apierror.InternalError("internal server error"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
