package products

import (
	"context"
	"fmt"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/core/tx"
	"gestistock/internal/domain/audit"
	"gestistock/pkg/logger"
)

const entityName = "product"

// Service provides business logic for products: CRUD with name
// uniqueness, movement ownership, and name-group total aggregation.
type Service struct {
	repo      Repository
	movements MovementRepository
	txm       tx.Manager
	audit     audit.Notifier
}

// NewService creates a new product service.
func NewService(repo Repository, movements MovementRepository, txm tx.Manager, notifier audit.Notifier) *Service {
	if notifier == nil {
		notifier = audit.Nop{}
	}
	return &Service{
		repo:      repo,
		movements: movements,
		txm:       txm,
		audit:     notifier,
	}
}

// List retrieves products. With an ID it returns that single record or
// not-found. Without an ID it returns the whole table de-duplicated by
// name (one representative per name, lexicographic order); an empty
// table is reported as not-found, not as an empty list.
func (s *Service) List(ctx context.Context, productID *id.ID) ([]*Product, error) {
	if productID != nil {
		p, err := s.repo.GetByID(ctx, *productID)
		if err != nil {
			return nil, err
		}
		return []*Product{p}, nil
	}

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewEmptyCollection("products")
	}

	return DedupeByName(items), nil
}

// ListByName retrieves every location-variant of a named product.
func (s *Service) ListByName(ctx context.Context, name string) ([]*Product, error) {
	items, err := s.repo.ListByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewEmptyCollection("products").WithDetail("name", name)
	}
	return items, nil
}

// ListLowStock retrieves products whose aggregate total is below their
// minimum threshold.
func (s *Service) ListLowStock(ctx context.Context) ([]*Product, error) {
	items, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return DedupeByName(items), nil
}

// Movements retrieves the movement history of a product.
func (s *Service) Movements(ctx context.Context, productID id.ID) ([]*Movement, error) {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.movements.ListByProduct(ctx, productID)
}

// Create inserts a product after checking name uniqueness against other
// records, then refreshes the name-group totals. Runs as one transaction.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureUniqueName(ctx, p.Name, p.ID); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create %s: %w", entityName, err)
		}
		return s.RecomputeTotal(ctx, p.Name)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionCreate, entityName, p.ID,
		fmt.Sprintf("created product %q", p.Name))
	return nil
}

// Update merges a patch onto the stored record, re-checks name
// uniqueness, and refreshes totals. Totals are refreshed even when the
// patch did not touch quantities. When the patch renames the product,
// the previous name-group is refreshed as well so its totals do not go
// stale.
func (s *Service) Update(ctx context.Context, productID id.ID, patch Patch) (*Product, error) {
	var updated *Product

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		oldName := p.Name

		if patch.Name != nil && *patch.Name != oldName {
			if err := s.ensureUniqueName(ctx, *patch.Name, productID); err != nil {
				return err
			}
		}

		patch.Apply(p)
		if err := p.Validate(ctx); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("update %s: %w", entityName, err)
		}

		if err := s.RecomputeTotal(ctx, p.Name); err != nil {
			return err
		}
		if oldName != p.Name {
			if err := s.recomputeGroup(ctx, oldName, true); err != nil {
				return err
			}
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.ActionUpdate, entityName, productID,
		fmt.Sprintf("updated product %q", updated.Name))
	return updated, nil
}

// Delete removes a product, its movements, and refreshes the totals of
// the remaining name-siblings. Runs as one transaction.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	var name string

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		name = p.Name

		if _, err := s.movements.DeleteByProduct(ctx, productID); err != nil {
			return fmt.Errorf("delete movements: %w", err)
		}
		if err := s.repo.Delete(ctx, productID); err != nil {
			return fmt.Errorf("delete %s: %w", entityName, err)
		}

		// Siblings at other locations keep the name alive; an empty
		// group after the delete is not an error here.
		return s.recomputeGroup(ctx, name, true)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionDelete, entityName, productID,
		fmt.Sprintf("deleted product %q", name))
	return nil
}

// AddMovement records a stock change event, adjusts the quantity on
// hand at the product's location, and refreshes the name-group totals.
func (s *Service) AddMovement(ctx context.Context, m *Movement) error {
	if err := m.Validate(ctx); err != nil {
		return err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, m.ProductID)
		if err != nil {
			return err
		}

		switch m.Kind {
		case MovementIn:
			p.QuantityOnHand += m.Quantity
		case MovementOut:
			if p.QuantityOnHand < m.Quantity {
				return apperror.NewConflict("insufficient stock at this location").
					WithDetail("available", p.QuantityOnHand).
					WithDetail("requested", m.Quantity)
			}
			p.QuantityOnHand -= m.Quantity
		}

		if m.StockID == nil {
			m.StockID = p.StockID
		}

		if err := s.movements.Create(ctx, m); err != nil {
			return fmt.Errorf("create movement: %w", err)
		}
		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("update %s: %w", entityName, err)
		}
		return s.RecomputeTotal(ctx, p.Name)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionCreate, "movement", m.ID,
		fmt.Sprintf("recorded %s movement of %d", m.Kind, m.Quantity))
	return nil
}

// RecomputeTotal refreshes the derived QuantityTotal of every record in
// a name-group: the group is loaded with row locks, summed, and the sum
// written back on each member. Fails with not-found when no product
// carries the name.
func (s *Service) RecomputeTotal(ctx context.Context, name string) error {
	return s.recomputeGroup(ctx, name, false)
}

func (s *Service) recomputeGroup(ctx context.Context, name string, allowEmpty bool) error {
	group, err := s.repo.ListByNameForUpdate(ctx, name)
	if err != nil {
		return fmt.Errorf("load name-group %q: %w", name, err)
	}
	if len(group) == 0 {
		if allowEmpty {
			return nil
		}
		return apperror.NewNotFound(entityName, name)
	}

	var total int64
	for _, p := range group {
		total += p.QuantityOnHand
	}

	for _, p := range group {
		if err := s.repo.SetQuantityTotal(ctx, p.ID, total); err != nil {
			return fmt.Errorf("write total for %s: %w", p.ID, err)
		}
		p.QuantityTotal = total
	}

	logger.Debug(ctx, "recomputed quantity total",
		"name", name,
		"locations", len(group),
		"total", total,
	)
	return nil
}

// ensureUniqueName fails with a duplicate error when another live record
// already carries the name. A self-match (same ID) is not a conflict.
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
