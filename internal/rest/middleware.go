package rest

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// requestIDHeader carries the request correlation ID on responses.
const requestIDHeader = "X-Request-ID"

// requestID tags every request with a UUID, honoring one supplied by
// the caller.
func requestID(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		id := req.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)

		return next(w, req)
	}
}

// accessLog logs each request with its route and duration.
func accessLog(logger *zap.Logger) bunrouter.MiddlewareFunc {
	return func(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
		return func(w http.ResponseWriter, req bunrouter.Request) error {
			start := time.Now()
			err := next(w, req)

			logger.Debug("Handled request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("requestID", w.Header().Get(requestIDHeader)),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))

			return err
		}
	}
}
