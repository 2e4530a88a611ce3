package inventories

import (
	"context"
	"fmt"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/core/tx"
	"gestistock/internal/domain/audit"
)

const entityName = "inventory"

// Service provides business logic for inventory counts.
type Service struct {
	repo  Repository
	txm   tx.Manager
	audit audit.Notifier
}

// NewService creates a new inventory service.
func NewService(repo Repository, txm tx.Manager, notifier audit.Notifier) *Service {
	if notifier == nil {
		notifier = audit.Nop{}
	}
	return &Service{
		repo:  repo,
		txm:   txm,
		audit: notifier,
	}
}

// List retrieves counts: one by ID, or all (empty table is not-found).
func (s *Service) List(ctx context.Context, inventoryID *id.ID) ([]*Inventory, error) {
	if inventoryID != nil {
		inv, err := s.repo.GetByID(ctx, *inventoryID)
		if err != nil {
			return nil, err
		}
		return []*Inventory{inv}, nil
	}

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewEmptyCollection("inventories")
	}
	return items, nil
}

// Create inserts an inventory count.
func (s *Service) Create(ctx context.Context, inv *Inventory) error {
	if err := inv.Validate(ctx); err != nil {
		return err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, inv); err != nil {
			return fmt.Errorf("create %s: %w", entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionCreate, entityName, inv.ID,
		fmt.Sprintf("recorded inventory count at stock %s", inv.StockID))
	return nil
}

// Delete removes an inventory count.
func (s *Service) Delete(ctx context.Context, inventoryID id.ID) error {
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, inventoryID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, inventoryID)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionDelete, entityName, inventoryID, "deleted inventory count")
	return nil
}
