package uom

import (
	"context"
	"fmt"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/core/tx"
	"gestistock/internal/domain/audit"
	"gestistock/internal/domain/products"
	"gestistock/pkg/logger"
)

const entityName = "unit_of_measure"

// Service provides business logic for the UnitOfMeasure catalog.
type Service struct {
	repo     Repository
	products products.Repository
	txm      tx.Manager
	audit    audit.Notifier
}

// NewService creates a new unit-of-measure service.
func NewService(repo Repository, productRepo products.Repository, txm tx.Manager, notifier audit.Notifier) *Service {
	if notifier == nil {
		notifier = audit.Nop{}
	}
	return &Service{
		repo:     repo,
		products: productRepo,
		txm:      txm,
		audit:    notifier,
	}
}

// List retrieves units: one by ID, or all (empty table is not-found).
func (s *Service) List(ctx context.Context, unitID *id.ID) ([]*UnitOfMeasure, error) {
	if unitID != nil {
		u, err := s.repo.GetByID(ctx, *unitID)
		if err != nil {
			return nil, err
		}
		return []*UnitOfMeasure{u}, nil
	}

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewEmptyCollection("units_of_measure")
	}
	return items, nil
}

// Products lists the products measured in a unit, de-duplicated by name.
func (s *Service) Products(ctx context.Context, unitID id.ID) ([]*products.Product, error) {
	if _, err := s.repo.GetByID(ctx, unitID); err != nil {
		return nil, err
	}

	items, err := s.products.ListByUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewEmptyCollection("products").WithDetail("unitId", unitID.String())
	}
	return products.DedupeByName(items), nil
}

// Create inserts a unit after checking designation uniqueness.
func (s *Service) Create(ctx context.Context, u *UnitOfMeasure) error {
	if err := u.Validate(ctx); err != nil {
		return err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureUniqueDesignation(ctx, u.Designation, u.ID); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, u); err != nil {
			return fmt.Errorf("create %s: %w", entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionCreate, entityName, u.ID,
		fmt.Sprintf("created unit %q", u.Designation))
	return nil
}

// Update merges a patch onto the stored unit. Renaming the sentinel is
// refused, products must always have somewhere to fall back to.
func (s *Service) Update(ctx context.Context, unitID id.ID, patch Patch) (*UnitOfMeasure, error) {
	var updated *UnitOfMeasure

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		u, err := s.repo.GetByID(ctx, unitID)
		if err != nil {
			return err
		}

		if patch.Designation != nil && *patch.Designation != u.Designation {
			if u.IsSentinel() {
				return apperror.NewConflict("the fallback unit cannot be renamed").
					WithDetail("designation", SentinelDesignation)
			}
			if err := s.ensureUniqueDesignation(ctx, *patch.Designation, unitID); err != nil {
				return err
			}
		}

		patch.Apply(u)
		if err := u.Validate(ctx); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, u); err != nil {
			return fmt.Errorf("update %s: %w", entityName, err)
		}

		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.ActionUpdate, entityName, unitID,
		fmt.Sprintf("updated unit %q", updated.Designation))
	return updated, nil
}

// Delete removes a unit. Products measured in it are re-targeted to the
// "Non spécifiée" fallback unit first; a missing fallback aborts the
// delete, that is a deployment fault the seed tool should have fixed.
func (s *Service) Delete(ctx context.Context, unitID id.ID) error {
	var designation string

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		u, err := s.repo.GetByID(ctx, unitID)
		if err != nil {
			return err
		}
		if u.IsSentinel() {
			return apperror.NewConflict("the fallback unit cannot be deleted").
				WithDetail("designation", SentinelDesignation)
		}
		designation = u.Designation

		sentinel, err := s.repo.FindByDesignation(ctx, SentinelDesignation)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewInternal(fmt.Errorf("fallback unit %q is missing, run the seed tool", SentinelDesignation)).
					WithDetail("designation", SentinelDesignation)
			}
			return err
		}

		moved, err := s.products.ReassignUnit(ctx, unitID, sentinel.ID)
		if err != nil {
			return fmt.Errorf("reassign products to fallback unit: %w", err)
		}
		if moved > 0 {
			logger.Info(ctx, "reassigned products to fallback unit",
				"from", designation,
				"count", moved,
			)
		}

		return s.repo.Delete(ctx, unitID)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionDelete, entityName, unitID,
		fmt.Sprintf("deleted unit %q", designation))
	return nil
}

func (s *Service) ensureUniqueDesignation(ctx context.Context, designation string, excludeID id.ID) error {
	existing, err := s.repo.FindByDesignation(ctx, designation)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperror.NewDuplicate(entityName, "designation", designation)
	}
	return nil
}
