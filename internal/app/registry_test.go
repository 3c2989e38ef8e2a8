package app

import (
	"path/filepath"
	"testing"

	"go-erp/internal/config"
	"go-erp/internal/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestShippedRBACPolicy(t *testing.T) {
	cfg := &config.AppConfig{
		RBACModelFile:  filepath.Join("..", "..", "config", "rbac_model.conf"),
		RBACPolicyFile: filepath.Join("..", "..", "config", "rbac_policy.yaml"),
	}
	svc, err := newRBACService(cfg, zap.NewNop())
	require.NoError(t, err)

	cases := []struct {
		role, resource, action string
		allowed                bool
	}{
		{"accountant", "payment", "create", true},
		{"accountant", "department", "read", true},
		{"accountant", "kpi_record", "approve", false},
		{"sales", "quote", "delete", true},
		{"sales", "payment", "create", false},
		{"hr", "payroll", "create", true},
		{"hr", "payroll", "update", false},
		{"manager", "kpi_record", "approve", true},
		{"manager", "payment", "read", true},
		{"admin", "anything", "delete", true},
		{"", "payment", "read", false},
	}
	for _, tc := range cases {
		allowed, err := svc.Enforce(rbac.EnforceRequest{Role: tc.role, Resource: tc.resource, Action: tc.action})
		require.NoError(t, err)
		assert.Equal(t, tc.allowed, allowed, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}

func TestNewRBACService_FallsBackToBuiltInModel(t *testing.T) {
	cfg := &config.AppConfig{
		RBACModelFile:  filepath.Join(t.TempDir(), "missing.conf"),
		RBACPolicyFile: filepath.Join("..", "..", "config", "rbac_policy.yaml"),
	}
	svc, err := newRBACService(cfg, zap.NewNop())
	require.NoError(t, err)

	allowed, err := svc.Enforce(rbac.EnforceRequest{Role: "viewer", Resource: "region", Action: "read"})
	require.NoError(t, err)
	assert.True(t, allowed)
}
