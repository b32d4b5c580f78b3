package rbac

import (
	"context"
	"sync"
	"time"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

const DefaultPolicyTTL = time.Minute

type Service interface {
	LoadCompanyPolicy(companyID string) error
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger

	mu       sync.Mutex
	loadedAt map[string]time.Time
}

// NewService keeps every company's policy in one enforcer and reloads a
// company's rules once they are older than ttl.
func NewService(repo Repository, enforcer *casbin.Enforcer, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	if ttl <= 0 {
		ttl = DefaultPolicyTTL
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		ttl:      ttl,
		now:      time.Now,
		logger:   l,
		loadedAt: make(map[string]time.Time),
	}
}

func (s *service) LoadCompanyPolicy(companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCompanyPolicyUnlocked(companyID)
}

func (s *service) loadCompanyPolicyUnlocked(companyID string) error {
	ctx := context.Background()

	employeeRoles, err := s.repo.GetEmployeeRoles(ctx, companyID)
	if err != nil {
		return err
	}
	rolePerms, err := s.repo.GetRolePermissions(ctx, companyID)
	if err != nil {
		return err
	}

	// replace only this company's rules; other companies stay loaded
	if _, err := s.enforcer.RemoveFilteredGroupingPolicy(2, companyID); err != nil {
		return err
	}
	if _, err := s.enforcer.RemoveFilteredPolicy(1, companyID); err != nil {
		return err
	}

	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, er.RoleID, companyID); err != nil {
			return err
		}
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, companyID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.loadedAt[companyID] = s.now()
	s.logger.Debug("rbac policy loaded",
		zap.String("company_id", companyID),
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if at, ok := s.loadedAt[req.CompanyID]; !ok || s.now().Sub(at) >= s.ttl {
		if err := s.loadCompanyPolicyUnlocked(req.CompanyID); err != nil {
			s.logger.Error("rbac load policy failed", zap.String("company_id", req.CompanyID), zap.Error(err))
			return false, err
		}
	}

	allowed, err := s.enforcer.Enforce(req.EmployeeID, req.CompanyID, req.Resource, req.Action)
	if err != nil {
		return false, err
	}

	if !allowed {
		s.logger.Info("rbac denied",
			zap.String("employee_id", req.EmployeeID),
			zap.String("company_id", req.CompanyID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Strings("roles", s.enforcer.GetRolesForUserInDomain(req.EmployeeID, req.CompanyID)),
		)
	}
	return allowed, nil
}
