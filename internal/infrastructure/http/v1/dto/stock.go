package dto

import (
	"gestistock/internal/domain/catalogs/stock"
)

// CreateStockRequest is the request body for creating a stock location.
type CreateStockRequest struct {
	Location string `json:"location" binding:"required"`
	Phone    string `json:"phone"`
	Fax      string `json:"fax"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateStockRequest) ToEntity() *stock.Stock {
	s := stock.NewStock(r.Location)
	s.Phone = r.Phone
	s.Fax = r.Fax
	return s
}

// UpdateStockRequest is the request body for a partial update.
type UpdateStockRequest struct {
	Location *string `json:"location"`
	Phone    *string `json:"phone"`
	Fax      *string `json:"fax"`
}

// ToPatch converts DTO to a domain patch.
func (r *UpdateStockRequest) ToPatch() stock.Patch {
	return stock.Patch{
		Location: r.Location,
		Phone:    r.Phone,
		Fax:      r.Fax,
	}
}

// StockResponse is the response body for a stock location.
type StockResponse struct {
	ID       string `json:"id"`
	Location string `json:"location"`
	Phone    string `json:"phone,omitempty"`
	Fax      string `json:"fax,omitempty"`
}

// FromStock creates a response DTO from the domain entity.
func FromStock(s *stock.Stock) *StockResponse {
	return &StockResponse{
		ID:       s.ID.String(),
		Location: s.Location,
		Phone:    s.Phone,
		Fax:      s.Fax,
	}
}

// FromStocks maps a stock list to response DTOs.
func FromStocks(items []*stock.Stock) []*StockResponse {
	out := make([]*StockResponse, 0, len(items))
	for _, s := range items {
		out = append(out, FromStock(s))
	}
	return out
}
