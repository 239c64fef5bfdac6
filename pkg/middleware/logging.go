package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

const (
	// Cálculo do relatório sobre o snapshot em memória deve responder bem abaixo disso
	slowRequestThreshold = 500 * time.Millisecond
	correlationHeader    = "X-Correlation-ID"
)

// LoggingMiddleware registra uma linha por requisição, no nível do status da resposta.
// Em produção inclui origem e user agent.
func LoggingMiddleware(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)
			w.Header().Set(correlationHeader, correlationID)

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(sw, r)

			elapsed := time.Since(start)
			fields := log.Fields{
				"correlation_id": correlationID,
				"method":         r.Method,
				"path":           r.URL.Path,
				"status_code":    sw.status,
				"duration_ms":    elapsed.Milliseconds(),
			}
			if r.URL.RawQuery != "" {
				fields["query"] = r.URL.RawQuery
			}
			if elapsed > slowRequestThreshold {
				fields["slow"] = true
			}
			if production {
				fields["remote_addr"] = r.RemoteAddr
				fields["user_agent"] = r.UserAgent()
			}

			logger := log.L.WithFields(fields)
			switch {
			case sw.status >= http.StatusInternalServerError:
				logger.Error("Requisição finalizada com erro")
			case sw.status >= http.StatusBadRequest:
				logger.Warn("Requisição rejeitada")
			default:
				logger.Info("Requisição atendida")
			}
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware converte um panic em SRV_001. A pilha só vai para o log em produção.
func LogPanicMiddleware(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				logger := log.ForContext(r.Context()).WithFields(log.Fields{
					"panic_error": rec,
					"method":      r.Method,
					"path":        r.URL.Path,
				})
				if production {
					logger = logger.WithField("stack_trace", string(debug.Stack()))
				}
				logger.Error("Erro não tratado ao atender a requisição")

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
