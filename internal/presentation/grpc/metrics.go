package grpc

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// UnaryMetricsInterceptor counts RPCs by method and status code.
func UnaryMetricsInterceptor(meter metric.Meter) (grpc.UnaryServerInterceptor, error) {
	rpcCounter, err := meter.Int64Counter("grpc_server_handled_total",
		metric.WithDescription("Completed unary RPCs by method and status code"))
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)

		rpcCounter.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("method", info.FullMethod),
				attribute.String("code", status.Code(err).String()),
			))

		return resp, err
	}, nil
}
