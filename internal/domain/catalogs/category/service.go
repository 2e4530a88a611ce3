package category

import (
	"context"
	"fmt"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/core/tx"
	"gestistock/internal/domain/audit"
	"gestistock/internal/domain/products"
)

const entityName = "category"

// Service provides business logic for the Category catalog.
type Service struct {
	repo     Repository
	products products.Repository
	txm      tx.Manager
	audit    audit.Notifier
}

// NewService creates a new category service.
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

// List retrieves categories: one by ID, or all (empty table is not-found).
func (s *Service) List(ctx context.Context, categoryID *id.ID) ([]*Category, error) {
	if categoryID != nil {
		c, err := s.repo.GetByID(ctx, *categoryID)
		if err != nil {
			return nil, err
		}
		return []*Category{c}, nil
	}

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewEmptyCollection("categories")
	}
	return items, nil
}

// Products lists the products of a category, de-duplicated by name.
func (s *Service) Products(ctx context.Context, categoryID id.ID) ([]*products.Product, error) {
	if _, err := s.repo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	items, err := s.products.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewEmptyCollection("products").WithDetail("categoryId", categoryID.String())
	}
	return products.DedupeByName(items), nil
}

// Create inserts a category after checking designation uniqueness.
func (s *Service) Create(ctx context.Context, c *Category) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureUniqueDesignation(ctx, c.Designation, c.ID); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, c); err != nil {
			return fmt.Errorf("create %s: %w", entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionCreate, entityName, c.ID,
		fmt.Sprintf("created category %q", c.Designation))
	return nil
}

// Update merges a patch onto the stored category.
func (s *Service) Update(ctx context.Context, categoryID id.ID, patch Patch) (*Category, error) {
	var updated *Category

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}

		if patch.Designation != nil && *patch.Designation != c.Designation {
			if err := s.ensureUniqueDesignation(ctx, *patch.Designation, categoryID); err != nil {
				return err
			}
		}

		patch.Apply(c)
		if err := c.Validate(ctx); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, c); err != nil {
			return fmt.Errorf("update %s: %w", entityName, err)
		}

		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.ActionUpdate, entityName, categoryID,
		fmt.Sprintf("updated category %q", updated.Designation))
	return updated, nil
}

// Delete removes a category. Deletion is blocked while products still
// reference it: relinking to a sentinel is reserved for units of
// measure, and silently orphaning references is worse than refusing.
func (s *Service) Delete(ctx context.Context, categoryID id.ID) error {
	var designation string

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		designation = c.Designation

		inUse, err := s.products.ExistsByCategory(ctx, categoryID)
		if err != nil {
			return err
		}
		if inUse {
			return apperror.NewConflict("category still has products").
				WithDetail("designation", designation)
		}

		return s.repo.Delete(ctx, categoryID)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionDelete, entityName, categoryID,
		fmt.Sprintf("deleted category %q", designation))
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
