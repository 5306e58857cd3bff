package middleware

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/paydown/internal/metrics"
)

func TestLoggingInterceptor(t *testing.T) {
	interceptor := LoggingInterceptor()

	tests := []struct {
		name     string
		err      error
		wantCode connect.Code
	}{
		{"success", nil, 0},
		{"client error", connect.NewError(connect.CodeNotFound, errors.New("bet x: not found")), connect.CodeNotFound},
		{"internal error", connect.NewError(connect.CodeInternal, errors.New("disk full")), connect.CodeInternal},
		{"plain error", errors.New("boom"), connect.CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.CollectAndCount(metrics.RPCDuration)

			next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return connect.NewResponse(&struct{}{}), nil
			}

			resp, err := interceptor(next)(context.Background(), connect.NewRequest(&struct{}{}))
			if !errors.Is(err, tt.err) {
				t.Fatalf("error = %v, want %v", err, tt.err)
			}
			if tt.err == nil && resp == nil {
				t.Fatal("response dropped")
			}
			if tt.err != nil && connect.CodeOf(err) != tt.wantCode {
				t.Errorf("code = %v, want %v", connect.CodeOf(err), tt.wantCode)
			}

			if after := testutil.CollectAndCount(metrics.RPCDuration); after != before+1 {
				t.Errorf("latency series = %d, want %d", after, before+1)
			}
		})
	}
}
