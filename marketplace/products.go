package marketplace

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"github.com/stoneridge/go-marketplace-client/gateway"
)

// ProductService covers the /products endpoint group.
type ProductService struct {
	gw *gateway.Client
}

// Create publishes a new listing.
func (s *ProductService) Create(ctx context.Context, req ProductCreateRequest) (*Product, error) {
	var out Product
	if err := s.gw.Post(ctx, "/products", req, &out); err != nil {
		return nil, errors.Wrap(err, "[ProductService.Create]")
	}
	return &out, nil
}

// Get fetches one listing in full detail.
func (s *ProductService) Get(ctx context.Context, id int64) (*Product, error) {
	var out Product
	if err := s.gw.Get(ctx, fmt.Sprintf("/products/%d", id), nil, &out); err != nil {
		return nil, errors.Wrap(err, "[ProductService.Get]")
	}
	return &out, nil
}

// List pages through all active listings.
func (s *ProductService) List(ctx context.Context, page PageParams) (*Page[ProductSummary], error) {
	var out Page[ProductSummary]
	if err := s.gw.Get(ctx, "/products", page.Values(), &out); err != nil {
		return nil, errors.Wrap(err, "[ProductService.List]")
	}
	return &out, nil
}

// Update edits a listing the caller owns.
func (s *ProductService) Update(ctx context.Context, id int64, req ProductUpdateRequest) (*Product, error) {
	var out Product
	if err := s.gw.Put(ctx, fmt.Sprintf("/products/%d", id), req, &out); err != nil {
		return nil, errors.Wrap(err, "[ProductService.Update]")
	}
	return &out, nil
}

// Delete removes a listing the caller owns.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	err := s.gw.Delete(ctx, fmt.Sprintf("/products/%d", id), nil)
	return errors.Wrap(err, "[ProductService.Delete]")
}

// ByCategory pages listings within one category.
func (s *ProductService) ByCategory(ctx context.Context, categoryID int64, page PageParams) (*Page[ProductSummary], error) {
	var out Page[ProductSummary]
	if err := s.gw.Get(ctx, fmt.Sprintf("/products/category/%d", categoryID), page.Values(), &out); err != nil {
		return nil, errors.Wrap(err, "[ProductService.ByCategory]")
	}
	return &out, nil
}

// Search finds listings matching a keyword.
func (s *ProductService) Search(ctx context.Context, keyword string, page PageParams) (*Page[ProductSummary], error) {
	q := page.Values()
	q.Set("keyword", keyword)
	var out Page[ProductSummary]
	if err := s.gw.Get(ctx, "/products/search", q, &out); err != nil {
		return nil, errors.Wrap(err, "[ProductService.Search]")
	}
	return &out, nil
}

// Filter applies structured filters.
func (s *ProductService) Filter(ctx context.Context, filter ProductFilter) (*Page[ProductSummary], error) {
	var out Page[ProductSummary]
	if err := s.gw.Get(ctx, "/products/filter", filter.Values(), &out); err != nil {
		return nil, errors.Wrap(err, "[ProductService.Filter]")
	}
	return &out, nil
}

// ByBuilding pages listings from sellers in one building.
func (s *ProductService) ByBuilding(ctx context.Context, building string, page PageParams) (*Page[ProductSummary], error) {
	var out Page[ProductSummary]
	if err := s.gw.Get(ctx, "/products/building/"+url.PathEscape(building), page.Values(), &out); err != nil {
		return nil, errors.Wrap(err, "[ProductService.ByBuilding]")
	}
	return &out, nil
}

// Mine pages the caller's own listings, active and sold.
func (s *ProductService) Mine(ctx context.Context, page PageParams) (*Page[ProductSummary], error) {
	var out Page[ProductSummary]
	if err := s.gw.Get(ctx, "/products/my-products", page.Values(), &out); err != nil {
		return nil, errors.Wrap(err, "[ProductService.Mine]")
	}
	return &out, nil
}

// MarkSold records the sale of a listing to a buyer at the agreed
// price; both ride in the query string.
func (s *ProductService) MarkSold(ctx context.Context, id, buyerID int64, soldPrice float64) (*Product, error) {
	var out Product
	err := s.gw.Do(ctx, gateway.Request{
		Method: "POST",
		Path:   fmt.Sprintf("/products/%d/mark-sold", id),
		Query: url.Values{
			"buyerId":   []string{strconv.FormatInt(buyerID, 10)},
			"soldPrice": []string{strconv.FormatFloat(soldPrice, 'f', -1, 64)},
		},
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[ProductService.MarkSold]")
	}
	return &out, nil
}

// Trending lists the most viewed listings; limit defaults to 10
// server-side when zero.
func (s *ProductService) Trending(ctx context.Context, limit int) ([]ProductSummary, error) {
	return s.limited(ctx, "/products/trending", limit, "[ProductService.Trending]")
}

// Recent lists the newest listings.
func (s *ProductService) Recent(ctx context.Context, limit int) ([]ProductSummary, error) {
	return s.limited(ctx, "/products/recent", limit, "[ProductService.Recent]")
}

func (s *ProductService) limited(ctx context.Context, path string, limit int, wrap string) ([]ProductSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{"limit": []string{strconv.Itoa(limit)}}
	var out []ProductSummary
	if err := s.gw.Get(ctx, path, q, &out); err != nil {
		return nil, errors.Wrap(err, wrap)
	}
	return out, nil
}
