package bootstrap_test

import (
	"context"
	"testing"

	"go-erp/internal/bootstrap"
	"go-erp/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	audit := bootstrap.NewStdoutAuditLogger(zap.New(core))

	ctx := contextutil.WithSession(context.Background(), contextutil.Session{UserID: "u-1", Role: "accountant"})
	ctx = contextutil.WithRequestID(ctx, "rid-7")

	audit.Log(ctx, bootstrap.AuditLog{
		Action:  "PAYMENT_MATCH_COMPLETED",
		Message: "Bank transaction linked to contract",
		Meta:    map[string]any{"saga_id": "s-1"},
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "audit", entry.LoggerName)
	fields := entry.ContextMap()
	assert.Equal(t, "PAYMENT_MATCH_COMPLETED", fields["action"])
	assert.Equal(t, "rid-7", fields["request_id"])
	assert.Equal(t, "u-1", fields["user_id"])
}
