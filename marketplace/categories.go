package marketplace

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	"github.com/stoneridge/go-marketplace-client/gateway"
)

// CategoryService covers the /categories endpoint group.
type CategoryService struct {
	gw *gateway.Client
}

// All lists the category tree.
func (s *CategoryService) All(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := s.gw.Get(ctx, "/categories", nil, &out); err != nil {
		return nil, errors.Wrap(err, "[CategoryService.All]")
	}
	return out, nil
}

// Get fetches one category.
func (s *CategoryService) Get(ctx context.Context, id int64) (*Category, error) {
	var out Category
	if err := s.gw.Get(ctx, fmt.Sprintf("/categories/%d", id), nil, &out); err != nil {
		return nil, errors.Wrap(err, "[CategoryService.Get]")
	}
	return &out, nil
}

// Request proposes a new category for admin review.
func (s *CategoryService) Request(ctx context.Context, req CategoryRequest) (*CategoryRequest, error) {
	var out CategoryRequest
	if err := s.gw.Post(ctx, "/categories/request", req, &out); err != nil {
		return nil, errors.Wrap(err, "[CategoryService.Request]")
	}
	return &out, nil
}

// MyRequests lists the caller's pending and reviewed proposals.
func (s *CategoryService) MyRequests(ctx context.Context) ([]CategoryRequest, error) {
	var out []CategoryRequest
	if err := s.gw.Get(ctx, "/categories/my-requests", nil, &out); err != nil {
		return nil, errors.Wrap(err, "[CategoryService.MyRequests]")
	}
	return out, nil
}

// Search finds categories by keyword.
func (s *CategoryService) Search(ctx context.Context, keyword string) ([]Category, error) {
	q := url.Values{"keyword": []string{keyword}}
	var out []Category
	if err := s.gw.Get(ctx, "/categories/search", q, &out); err != nil {
		return nil, errors.Wrap(err, "[CategoryService.Search]")
	}
	return out, nil
}
