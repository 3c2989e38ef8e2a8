package rbac

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
}

type RoleInheritanceRow struct {
	Role   string
	Parent string
}

type Repository interface {
	GetRolePermissions() ([]RolePermissionRow, error)
	GetRoleInheritance() ([]RoleInheritanceRow, error)
}

// policyFile is the on-disk shape:
//
//	roles:
//	  accountant:
//	    inherits: [viewer]
//	    permissions: ["payment:*", "contract:read"]
type policyFile struct {
	Roles map[string]struct {
		Inherits    []string `yaml:"inherits"`
		Permissions []string `yaml:"permissions"`
	} `yaml:"roles"`
}

type fileRepository struct {
	path string
}

// NewFileRepository reads the role policy from a YAML file on every load,
// so a reload picks up edits without a restart.
func NewFileRepository(path string) Repository {
	return &fileRepository{path: path}
}

func (r *fileRepository) read() (policyFile, error) {
	var pf policyFile
	data, err := os.ReadFile(r.path)
	if err != nil {
		return pf, fmt.Errorf("read rbac policy: %w", err)
	}
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return pf, fmt.Errorf("parse rbac policy: %w", err)
	}
	return pf, nil
}

func (r *fileRepository) GetRolePermissions() ([]RolePermissionRow, error) {
	pf, err := r.read()
	if err != nil {
		return nil, err
	}
	var rows []RolePermissionRow
	for role, def := range pf.Roles {
		for _, perm := range def.Permissions {
			resource, action, ok := strings.Cut(perm, ":")
			if !ok || resource == "" || action == "" {
				return nil, fmt.Errorf("role %s: invalid permission %q, expected resource:action", role, perm)
			}
			rows = append(rows, RolePermissionRow{Role: role, Resource: resource, Action: action})
		}
	}
	return rows, nil
}

func (r *fileRepository) GetRoleInheritance() ([]RoleInheritanceRow, error) {
	pf, err := r.read()
	if err != nil {
		return nil, err
	}
	var rows []RoleInheritanceRow
	for role, def := range pf.Roles {
		for _, parent := range def.Inherits {
			rows = append(rows, RoleInheritanceRow{Role: role, Parent: parent})
		}
	}
	return rows, nil
}
