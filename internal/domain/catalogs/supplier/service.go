package supplier

import (
	"context"
	"fmt"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/core/tx"
	"gestistock/internal/domain/audit"
	"gestistock/internal/domain/products"
)

const entityName = "supplier"

// Service provides business logic for the Supplier catalog.
type Service struct {
	repo     Repository
	products products.Repository
	txm      tx.Manager
	audit    audit.Notifier
}

// NewService creates a new supplier service.
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

// List retrieves suppliers: one by ID, or all (empty table is not-found).
func (s *Service) List(ctx context.Context, supplierID *id.ID) ([]*Supplier, error) {
	if supplierID != nil {
		sup, err := s.repo.GetByID(ctx, *supplierID)
		if err != nil {
			return nil, err
		}
		return []*Supplier{sup}, nil
	}

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewEmptyCollection("suppliers")
	}
	return items, nil
}

// Create inserts a supplier after checking name uniqueness.
func (s *Service) Create(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(ctx); err != nil {
		return err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureUniqueName(ctx, sup.Name, sup.ID); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, sup); err != nil {
			return fmt.Errorf("create %s: %w", entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionCreate, entityName, sup.ID,
		fmt.Sprintf("created supplier %q", sup.Name))
	return nil
}

// Update merges a patch onto the stored supplier.
func (s *Service) Update(ctx context.Context, supplierID id.ID, patch Patch) (*Supplier, error) {
	var updated *Supplier

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		sup, err := s.repo.GetByID(ctx, supplierID)
		if err != nil {
			return err
		}

		if patch.Name != nil && *patch.Name != sup.Name {
			if err := s.ensureUniqueName(ctx, *patch.Name, supplierID); err != nil {
				return err
			}
		}

		patch.Apply(sup)
		if err := sup.Validate(ctx); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, sup); err != nil {
			return fmt.Errorf("update %s: %w", entityName, err)
		}

		updated = sup
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.ActionUpdate, entityName, supplierID,
		fmt.Sprintf("updated supplier %q", updated.Name))
	return updated, nil
}

// Delete removes a supplier. Deletion is blocked while products still
// reference it.
func (s *Service) Delete(ctx context.Context, supplierID id.ID) error {
	var name string

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		sup, err := s.repo.GetByID(ctx, supplierID)
		if err != nil {
			return err
		}
		name = sup.Name

		inUse, err := s.products.ExistsBySupplier(ctx, supplierID)
		if err != nil {
			return err
		}
		if inUse {
			return apperror.NewConflict("supplier still has products").
				WithDetail("name", name)
		}

		return s.repo.Delete(ctx, supplierID)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionDelete, entityName, supplierID,
		fmt.Sprintf("deleted supplier %q", name))
	return nil
}

func (s *Service) ensureUniqueName(ctx context.Context, name string, excludeID id.ID) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperror.NewDuplicate(entityName, "name", name)
	}
	return nil
}
