package catalog

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrNegativeStock = errors.New("stock must not be negative")
	ErrBadChannel    = errors.New("unknown reservation channel")
)

// Service is the admin mutation surface over the catalog. Every
// mutation loads the whole list, transforms it, and saves it back.
type Service struct {
	Repo Repository
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.Repo.Load(ctx)
}

// UpdateChannelStock sets one stock pool to n. Total stock is
// recomputed and the availability flag forced to total>0, which
// overwrites a manual stop-selling toggle.
func (s *Service) UpdateChannelStock(ctx context.Context, id int, c Channel, n int) (Product, error) {
	if n < 0 {
		return Product{}, ErrNegativeStock
	}
	if !ValidReservationChannel(c) {
		return Product{}, ErrBadChannel
	}
	return s.mutate(ctx, id, func(p *Product) {
		p.setChannelStock(c, n)
	})
}

// ToggleAvailability flips the selling flag without touching stock.
func (s *Service) ToggleAvailability(ctx context.Context, id int) (Product, error) {
	return s.mutate(ctx, id, func(p *Product) {
		p.IsAvailable = !p.IsAvailable
	})
}

// UpdatePrice overwrites the price unconditionally. The list-view entry
// point does not validate; the edit form path (SaveProduct) does.
func (s *Service) UpdatePrice(ctx context.Context, id int, price int) (Product, error) {
	return s.mutate(ctx, id, func(p *Product) {
		p.Price = price
	})
}

// SaveProduct replaces a product wholesale after validating the edit
// form fields. Field failures come back as a field→message map and
// nothing is persisted while it is non-empty.
func (s *Service) SaveProduct(ctx context.Context, upd Product) (Product, map[string]string, error) {
	if fieldErrs := validateProduct(upd); len(fieldErrs) > 0 {
		return Product{}, fieldErrs, nil
	}
	p, err := s.mutate(ctx, upd.ID, func(p *Product) {
		upd.TotalStock = upd.TodayStock + upd.AdvanceStock
		upd.IsAvailable = upd.TotalStock > 0
		*p = upd
	})
	return p, nil, err
}

func validateProduct(p Product) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "name is required"
	}
	if p.Price <= 0 {
		errs["price"] = "price must be greater than zero"
	}
	if p.TodayStock < 0 {
		errs["today_stock"] = "same-day stock must be zero or more"
	}
	if p.AdvanceStock < 0 {
		errs["advance_stock"] = "advance stock must be zero or more"
	}
	if p.Category != CategorySoft && p.Category != CategoryHard {
		errs["category"] = "select a category"
	}
	if p.Channel != ChannelToday && p.Channel != ChannelAdvance && p.Channel != ChannelBoth {
		errs["reservation_type"] = "select a reservation type"
	}
	if strings.TrimSpace(p.Image) == "" {
		errs["image"] = "image URL is required"
	}
	return errs
}

func (s *Service) mutate(ctx context.Context, id int, fn func(*Product)) (Product, error) {
	products, err := s.Repo.Load(ctx)
	if err != nil {
		return Product{}, err
	}
	for i := range products {
		if products[i].ID != id {
			continue
		}
		fn(&products[i])
		if err := s.Repo.Save(ctx, products); err != nil {
			return Product{}, err
		}
		return products[i], nil
	}
	return Product{}, ErrNotFound
}
