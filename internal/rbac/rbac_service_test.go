package rbac

import (
	"context"
	"testing"
	"time"

	"elec-payroll/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	roles map[string][]EmployeeRoleRow
	perms map[string][]RolePermissionRow
	loads int
}

func (f *fakeRepo) GetEmployeeRoles(ctx context.Context, companyID string) ([]EmployeeRoleRow, error) {
	f.loads++
	return f.roles[companyID], nil
}

func (f *fakeRepo) GetRolePermissions(ctx context.Context, companyID string) ([]RolePermissionRow, error) {
	return f.perms[companyID], nil
}

func newTestService(t *testing.T, repo Repository) *service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	require.NoError(t, err)
	return NewService(repo, enforcer, time.Minute).(*service)
}

func payrollRepo() *fakeRepo {
	return &fakeRepo{
		roles: map[string][]EmployeeRoleRow{
			"company-1": {{EmployeeID: "emp-1", RoleID: "role-payroll"}},
			"company-2": {{EmployeeID: "emp-2", RoleID: "role-admin"}},
		},
		perms: map[string][]RolePermissionRow{
			"company-1": {{RoleID: "role-payroll", Resource: "export", Action: "create"}},
			"company-2": {{RoleID: "role-admin", Resource: "export", Action: "*"}},
		},
	}
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t, payrollRepo())

	allowed, err := svc.Enforce(EnforceRequest{EmployeeID: "emp-1", CompanyID: "company-1", Resource: "export", Action: "create"})
	require.NoError(t, err)
	assert.True(t, allowed)

	denied, err := svc.Enforce(EnforceRequest{EmployeeID: "emp-1", CompanyID: "company-1", Resource: "export", Action: "sync"})
	require.NoError(t, err)
	assert.False(t, denied)
}

func TestRBACService_CompaniesAreIsolated(t *testing.T) {
	svc := newTestService(t, payrollRepo())

	allowed, err := svc.Enforce(EnforceRequest{EmployeeID: "emp-2", CompanyID: "company-2", Resource: "export", Action: "sync"})
	require.NoError(t, err)
	assert.True(t, allowed, "wildcard action")

	crossed, err := svc.Enforce(EnforceRequest{EmployeeID: "emp-2", CompanyID: "company-1", Resource: "export", Action: "sync"})
	require.NoError(t, err)
	assert.False(t, crossed)

	still, err := svc.Enforce(EnforceRequest{EmployeeID: "emp-1", CompanyID: "company-1", Resource: "export", Action: "create"})
	require.NoError(t, err)
	assert.True(t, still)
}

func TestRBACService_ReloadsAfterTTL(t *testing.T) {
	repo := payrollRepo()
	svc := newTestService(t, repo)
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	req := EnforceRequest{EmployeeID: "emp-1", CompanyID: "company-1", Resource: "export", Action: "create"}
	_, _ = svc.Enforce(req)
	_, _ = svc.Enforce(req)
	assert.Equal(t, 1, repo.loads)

	repo.perms["company-1"] = nil
	now = now.Add(2 * time.Minute)

	allowed, err := svc.Enforce(req)
	require.NoError(t, err)
	assert.False(t, allowed, "revoked permission must disappear after reload")
	assert.Equal(t, 2, repo.loads)
}

func TestRBACService_LoadCompanyPolicyForcesReload(t *testing.T) {
	repo := payrollRepo()
	svc := newTestService(t, repo)

	require.NoError(t, svc.LoadCompanyPolicy("company-1"))
	require.NoError(t, svc.LoadCompanyPolicy("company-1"))

	assert.Equal(t, 2, repo.loads)
}
