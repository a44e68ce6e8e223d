package services

import (
	"context"
	"fmt"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/models"
)

// ResolverService turns human-readable reference names into ids. Resolution
// happens before any write; an unknown name never creates a row.
type ResolverService struct {
	refs ReferenceStore
}

func NewResolverService(refs ReferenceStore) *ResolverService {
	return &ResolverService{refs: refs}
}

// Resolve maps (kind, name) to the referenced id.
func (s *ResolverService) Resolve(ctx context.Context, kind, name string) (int, error) {
	switch kind {
	case models.RefRole:
		return s.refs.ResolveRole(ctx, name)
	case models.RefDepartment:
		return s.refs.ResolveDepartment(ctx, name)
	default:
		return 0, apperror.New(apperror.KindValidation, fmt.Sprintf("unknown reference kind %q", kind))
	}
}

func (s *ResolverService) Roles(ctx context.Context) ([]models.Role, error) {
	return s.refs.ListRoles(ctx)
}

func (s *ResolverService) Departments(ctx context.Context) ([]models.Department, error) {
	return s.refs.ListDepartments(ctx)
}
