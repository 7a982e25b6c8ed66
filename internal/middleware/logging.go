package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/metrics"
)

// LoggingInterceptor logs every RPC and records it in the metrics. Streams are logged
// once, when the handler returns.
type LoggingInterceptor struct {
	metrics *metrics.Metrics
}

var _ connect.Interceptor = (*LoggingInterceptor)(nil)

// NewLoggingInterceptor creates the interceptor. m may be nil.
func NewLoggingInterceptor(m *metrics.Metrics) *LoggingInterceptor {
	return &LoggingInterceptor{metrics: m}
}

func (i *LoggingInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		start := time.Now()
		resp, err := next(ctx, req)
		i.observe(req.Spec().Procedure, start, err)
		return resp, err
	}
}

func (i *LoggingInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (i *LoggingInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		start := time.Now()
		err := next(ctx, conn)
		i.observe(conn.Spec().Procedure, start, err)
		return err
	}
}

func (i *LoggingInterceptor) observe(procedure string, start time.Time, err error) {
	elapsed := time.Since(start)
	duration := elapsed.Milliseconds()

	if err == nil {
		i.metrics.ObserveRPC(procedure, "ok", elapsed)
		slog.Info("RPC ok", "procedure", procedure, "duration_ms", duration)
		return
	}

	code := connect.CodeOf(err)
	i.metrics.ObserveRPC(procedure, code.String(), elapsed)

	var connectErr *connect.Error
	if errors.As(err, &connectErr) && code != connect.CodeInternal && code != connect.CodeUnknown {
		slog.Warn("RPC error",
			"procedure", procedure,
			"code", code,
			"error", connectErr.Message(),
			"duration_ms", duration,
		)
		return
	}
	slog.Error("RPC error",
		"procedure", procedure,
		"code", code,
		"error", err,
		"duration_ms", duration,
	)
}
