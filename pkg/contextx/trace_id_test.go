package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"provider_map/pkg/contextx"
)

func TestTraceID(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		want    contextx.TraceID
		wantErr string
	}{
		{
			name:    "missing",
			ctx:     context.Background(),
			wantErr: "trace id: no value in context",
		},
		{
			name: "set",
			ctx:  contextx.WithTraceID(context.Background(), "cs1k2ts0m8p7o1h2f3eg"),
			want: "cs1k2ts0m8p7o1h2f3eg",
		},
		{
			name: "innermost wins",
			ctx:  contextx.WithTraceID(contextx.WithTraceID(context.Background(), "outer"), "inner"),
			want: "inner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			traceID, err := contextx.TraceIDFromContext(tt.ctx)
			if tt.wantErr != "" {
				rq.ErrorIs(err, contextx.ErrNoValue)
				rq.ErrorContains(err, tt.wantErr)
				rq.Empty(traceID)
				return
			}

			rq.NoError(err)
			rq.Equal(tt.want, traceID)
			rq.Equal(string(tt.want), traceID.String())
		})
	}
}
