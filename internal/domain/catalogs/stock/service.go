package stock

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/core/tx"
	"gestistock/internal/domain/audit"
	"gestistock/internal/domain/inventories"
	"gestistock/internal/domain/products"
	"gestistock/pkg/logger"
)

const entityName = "stock"

// Service provides business logic for stock locations. Deleting a
// location cascades to the products it holds.
type Service struct {
	repo        Repository
	products    products.Repository
	productSvc  *products.Service
	movements   products.MovementRepository
	inventories inventories.Repository
	txm         tx.Manager
	audit       audit.Notifier
}

// NewService creates a new stock service.
func NewService(
	repo Repository,
	productRepo products.Repository,
	productSvc *products.Service,
	movements products.MovementRepository,
	inventoryRepo inventories.Repository,
	txm tx.Manager,
	notifier audit.Notifier,
) *Service {
	if notifier == nil {
		notifier = audit.Nop{}
	}
	return &Service{
		repo:        repo,
		products:    productRepo,
		productSvc:  productSvc,
		movements:   movements,
		inventories: inventoryRepo,
		txm:         txm,
		audit:       notifier,
	}
}

// List retrieves stocks: one by ID, or all (empty table is not-found).
func (s *Service) List(ctx context.Context, stockID *id.ID) ([]*Stock, error) {
	if stockID != nil {
		st, err := s.repo.GetByID(ctx, *stockID)
		if err != nil {
			return nil, err
		}
		return []*Stock{st}, nil
	}

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewEmptyCollection("stocks")
	}
	return items, nil
}

// Products lists the products held at a location. A location with no
// products is a valid, empty answer.
func (s *Service) Products(ctx context.Context, stockID id.ID) ([]*products.Product, error) {
	if _, err := s.repo.GetByID(ctx, stockID); err != nil {
		return nil, err
	}
	return s.products.ListByStock(ctx, stockID)
}

// FindProduct locates one product at a location by name, supplier and
// purchase price. Several records can share a name across locations;
// the triple pins down which one is meant.
func (s *Service) FindProduct(ctx context.Context, stockID id.ID, name string, supplierID id.ID, price decimal.Decimal) (*products.Product, error) {
	if _, err := s.repo.GetByID(ctx, stockID); err != nil {
		return nil, err
	}

	items, err := s.products.ListByStock(ctx, stockID)
	if err != nil {
		return nil, err
	}
	for _, p := range items {
		if p.Name != name {
			continue
		}
		if p.SupplierID == nil || *p.SupplierID != supplierID {
			continue
		}
		if !p.PurchasePrice.Equal(price) {
			continue
		}
		return p, nil
	}
	return nil, apperror.NewNotFound("product", name).
		WithDetail("stockId", stockID.String())
}

// Movements lists the movements recorded at a location.
func (s *Service) Movements(ctx context.Context, stockID id.ID) ([]*products.Movement, error) {
	if _, err := s.repo.GetByID(ctx, stockID); err != nil {
		return nil, err
	}
	return s.movements.ListByStock(ctx, stockID)
}

// Inventories lists the counts taken at a location.
func (s *Service) Inventories(ctx context.Context, stockID id.ID) ([]*inventories.Inventory, error) {
	if _, err := s.repo.GetByID(ctx, stockID); err != nil {
		return nil, err
	}
	return s.inventories.ListByStock(ctx, stockID)
}

// Create inserts a stock after checking location uniqueness.
func (s *Service) Create(ctx context.Context, st *Stock) error {
	if err := st.Validate(ctx); err != nil {
		return err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureUniqueLocation(ctx, st.Location, st.ID); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, st); err != nil {
			return fmt.Errorf("create %s: %w", entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionCreate, entityName, st.ID,
		fmt.Sprintf("created stock %q", st.Location))
	return nil
}

// Update merges a patch onto the stored stock.
func (s *Service) Update(ctx context.Context, stockID id.ID, patch Patch) (*Stock, error) {
	var updated *Stock

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		st, err := s.repo.GetByID(ctx, stockID)
		if err != nil {
			return err
		}

		if patch.Location != nil && *patch.Location != st.Location {
			if err := s.ensureUniqueLocation(ctx, *patch.Location, stockID); err != nil {
				return err
			}
		}

		patch.Apply(st)
		if err := st.Validate(ctx); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, st); err != nil {
			return fmt.Errorf("update %s: %w", entityName, err)
		}

		updated = st
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.ActionUpdate, entityName, stockID,
		fmt.Sprintf("updated stock %q", updated.Location))
	return updated, nil
}

// Delete removes a location and everything it holds: each product at
// the location is deleted through the product service, so movement
// cleanup and name-group totals follow the usual path, then the
// location's inventory counts go, then the location itself. The whole
// cascade shares one transaction.
func (s *Service) Delete(ctx context.Context, stockID id.ID) error {
	var location string

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		st, err := s.repo.GetByID(ctx, stockID)
		if err != nil {
			return err
		}
		location = st.Location

		held, err := s.products.ListByStock(ctx, stockID)
		if err != nil {
			return err
		}
		for _, p := range held {
			if err := s.productSvc.Delete(ctx, p.ID); err != nil {
				return fmt.Errorf("cascade delete product %q: %w", p.Name, err)
			}
		}

		removed, err := s.inventories.DeleteByStock(ctx, stockID)
		if err != nil {
			return fmt.Errorf("delete inventories: %w", err)
		}

		if len(held) > 0 || removed > 0 {
			logger.Info(ctx, "cascaded stock delete",
				"location", location,
				"products", len(held),
				"inventories", removed,
			)
		}

		return s.repo.Delete(ctx, stockID)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionDelete, entityName, stockID,
		fmt.Sprintf("deleted stock %q", location))
	return nil
}

func (s *Service) ensureUniqueLocation(ctx context.Context, location string, excludeID id.ID) error {
	existing, err := s.repo.FindByLocation(ctx, location)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperror.NewDuplicate(entityName, "location", location)
	}
	return nil
}
