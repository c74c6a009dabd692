package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/logger"
)

// RequestLogger registra uma linha por requisição no logger do serviço.
// Deve vir depois de chimw.RequestID para levar o request_id.
func RequestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	log = logger.OrNop(log)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				fields := []any{
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"remote_ip", r.RemoteAddr,
					"request_id", chimw.GetReqID(r.Context()),
				}

				switch {
				case status >= 500:
					log.Errorw("request", fields...)
				case status >= 400:
					log.Warnw("request", fields...)
				default:
					log.Infow("request", fields...)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
