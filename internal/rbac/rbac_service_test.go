package rbac

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go-erp/internal/rbac/infra"

	"github.com/casbin/casbin/v2"
	"github.com/stretchr/testify/assert"
)

// =========================================
// Mock Repository
// =========================================

type mockRepo struct {
	perms       []RolePermissionRow
	inheritance []RoleInheritanceRow
	err         error
}

func (m *mockRepo) GetRolePermissions() ([]RolePermissionRow, error) {
	return m.perms, m.err
}

func (m *mockRepo) GetRoleInheritance() ([]RoleInheritanceRow, error) {
	return m.inheritance, m.err
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	e, err := infra.NewEnforcer("")
	assert.NoError(t, err)
	return e
}

func TestRBACService_Enforce(t *testing.T) {
	repo := &mockRepo{
		perms: []RolePermissionRow{
			{Role: "admin", Resource: "*", Action: "*"},
			{Role: "viewer", Resource: "contract", Action: "read"},
			{Role: "accountant", Resource: "payment", Action: "*"},
		},
		inheritance: []RoleInheritanceRow{
			{Role: "accountant", Parent: "viewer"},
		},
	}
	service := NewService(repo, newTestEnforcer(t))
	assert.NoError(t, service.LoadPolicy())

	tests := []struct {
		role, resource, action string
		want                   bool
	}{
		{"admin", "kpi-record", "delete", true},
		{"viewer", "contract", "read", true},
		{"viewer", "contract", "update", false},
		{"accountant", "payment", "create", true},
		{"accountant", "contract", "read", true},
		{"accountant", "payslip", "read", false},
		{"", "contract", "read", false},
		{"unknown", "contract", "read", false},
	}

	for _, tt := range tests {
		allowed, err := service.Enforce(EnforceRequest{Role: tt.role, Resource: tt.resource, Action: tt.action})
		assert.NoError(t, err)
		assert.Equal(t, tt.want, allowed, "%s %s:%s", tt.role, tt.resource, tt.action)
	}

	perms, err := service.PermissionsForRole("accountant")
	assert.NoError(t, err)
	assert.Equal(t, []Permission{
		{Resource: "contract", Action: "read"},
		{Resource: "payment", Action: "*"},
	}, perms)
}

func TestRBACService_LoadPolicyError(t *testing.T) {
	service := NewService(&mockRepo{err: errors.New("boom")}, newTestEnforcer(t))
	assert.Error(t, service.LoadPolicy())
}

func TestFileRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := `
roles:
  viewer:
    permissions: ["contract:read", "kpi:read"]
  hr:
    inherits: [viewer]
    permissions: ["payslip:*"]
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	repo := NewFileRepository(path)

	perms, err := repo.GetRolePermissions()
	assert.NoError(t, err)
	assert.Len(t, perms, 3)
	assert.Contains(t, perms, RolePermissionRow{Role: "hr", Resource: "payslip", Action: "*"})

	inh, err := repo.GetRoleInheritance()
	assert.NoError(t, err)
	assert.Equal(t, []RoleInheritanceRow{{Role: "hr", Parent: "viewer"}}, inh)

	service := NewService(repo, newTestEnforcer(t))
	assert.NoError(t, service.LoadPolicy())
	allowed, err := service.Enforce(EnforceRequest{Role: "hr", Resource: "kpi", Action: "read"})
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestFileRepository_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("roles:\n  x:\n    permissions: [\"nocolon\"]\n"), 0o600))

	_, err := NewFileRepository(path).GetRolePermissions()
	assert.Error(t, err)

	_, err = NewFileRepository(filepath.Join(t.TempDir(), "missing.yaml")).GetRolePermissions()
	assert.Error(t, err)
}
