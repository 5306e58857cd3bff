package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/paydown/internal/metrics"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// and records its latency. Client-side errors log at warn, internal ones at
// error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			elapsed := time.Since(start)
			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			metrics.ObserveRPC(procedure, code, elapsed)

			duration := elapsed.Milliseconds()
			var connectErr *connect.Error
			switch {
			case err == nil:
				slog.Info("RPC ok",
					"procedure", procedure,
					"duration_ms", duration,
				)
			case errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal && connectErr.Code() != connect.CodeUnknown:
				slog.Warn("RPC error",
					"procedure", procedure,
					"code", connectErr.Code(),
					"error", connectErr.Message(),
					"duration_ms", duration,
				)
			default:
				slog.Error("RPC error",
					"procedure", procedure,
					"code", code,
					"error", err,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}
