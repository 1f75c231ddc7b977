package admin

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	"github.com/stoneridge/go-marketplace-client/gateway"
	"github.com/stoneridge/go-marketplace-client/marketplace"
)

// AdminService covers the /admin endpoint group.
type AdminService struct {
	gw *gateway.Client
}

// GetDashboard fetches the landing page counters.
func (s *AdminService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	if err := s.gw.Get(ctx, "/admin/dashboard", nil, &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.GetDashboard]")
	}
	return &out, nil
}

// Users pages accounts, optionally filtered by a search term.
func (s *AdminService) Users(ctx context.Context, search string, page marketplace.PageParams) (*marketplace.Page[User], error) {
	q := page.Values()
	if search != "" {
		q.Set("search", search)
	}
	var out marketplace.Page[User]
	if err := s.gw.Get(ctx, "/admin/users", q, &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.Users]")
	}
	return &out, nil
}

// SuspendUser disables an account.
func (s *AdminService) SuspendUser(ctx context.Context, id int64) error {
	err := s.gw.Put(ctx, fmt.Sprintf("/admin/users/%d/suspend", id), nil, nil)
	return errors.Wrap(err, "[AdminService.SuspendUser]")
}

// UnsuspendUser re-enables an account.
func (s *AdminService) UnsuspendUser(ctx context.Context, id int64) error {
	err := s.gw.Put(ctx, fmt.Sprintf("/admin/users/%d/unsuspend", id), nil, nil)
	return errors.Wrap(err, "[AdminService.UnsuspendUser]")
}

// LockUser locks an account against login.
func (s *AdminService) LockUser(ctx context.Context, id int64) error {
	err := s.gw.Put(ctx, fmt.Sprintf("/admin/users/%d/lock", id), nil, nil)
	return errors.Wrap(err, "[AdminService.LockUser]")
}

// UnlockUser unlocks an account.
func (s *AdminService) UnlockUser(ctx context.Context, id int64) error {
	err := s.gw.Put(ctx, fmt.Sprintf("/admin/users/%d/unlock", id), nil, nil)
	return errors.Wrap(err, "[AdminService.UnlockUser]")
}

// Products pages every listing, regardless of owner or status.
func (s *AdminService) Products(ctx context.Context, page marketplace.PageParams) (*marketplace.Page[marketplace.ProductSummary], error) {
	var out marketplace.Page[marketplace.ProductSummary]
	if err := s.gw.Get(ctx, "/admin/products", page.Values(), &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.Products]")
	}
	return &out, nil
}

// DeactivateProduct pulls a listing from the marketplace.
func (s *AdminService) DeactivateProduct(ctx context.Context, id int64) error {
	err := s.gw.Put(ctx, fmt.Sprintf("/admin/products/%d/deactivate", id), nil, nil)
	return errors.Wrap(err, "[AdminService.DeactivateProduct]")
}

// DeleteProduct removes a listing permanently.
func (s *AdminService) DeleteProduct(ctx context.Context, id int64) error {
	err := s.gw.Delete(ctx, fmt.Sprintf("/admin/products/%d", id), nil)
	return errors.Wrap(err, "[AdminService.DeleteProduct]")
}

// PendingCategoryRequests lists user proposals awaiting review.
func (s *AdminService) PendingCategoryRequests(ctx context.Context) ([]marketplace.CategoryRequest, error) {
	var out []marketplace.CategoryRequest
	if err := s.gw.Get(ctx, "/admin/category-requests/pending", nil, &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.PendingCategoryRequests]")
	}
	return out, nil
}

// ApproveCategoryRequest accepts a proposal, creating the category.
func (s *AdminService) ApproveCategoryRequest(ctx context.Context, id int64) error {
	err := s.gw.Post(ctx, fmt.Sprintf("/admin/category-requests/%d/approve", id), nil, nil)
	return errors.Wrap(err, "[AdminService.ApproveCategoryRequest]")
}

// RejectCategoryRequest declines a proposal; review notes ride in the
// query string.
func (s *AdminService) RejectCategoryRequest(ctx context.Context, id int64, reviewNotes string) error {
	err := s.gw.Do(ctx, gateway.Request{
		Method: "POST",
		Path:   fmt.Sprintf("/admin/category-requests/%d/reject", id),
		Query:  url.Values{"reviewNotes": []string{reviewNotes}},
	}, nil)
	return errors.Wrap(err, "[AdminService.RejectCategoryRequest]")
}

// CreateCategory adds a category directly.
func (s *AdminService) CreateCategory(ctx context.Context, req CategoryCreateRequest) (*marketplace.Category, error) {
	var out marketplace.Category
	if err := s.gw.Post(ctx, "/admin/categories", req, &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.CreateCategory]")
	}
	return &out, nil
}

// UpdateCategory edits a category.
func (s *AdminService) UpdateCategory(ctx context.Context, id int64, req CategoryUpdateRequest) (*marketplace.Category, error) {
	var out marketplace.Category
	if err := s.gw.Put(ctx, fmt.Sprintf("/admin/categories/%d", id), req, &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.UpdateCategory]")
	}
	return &out, nil
}

// DeactivateCategory hides a category from the marketplace.
func (s *AdminService) DeactivateCategory(ctx context.Context, id int64) error {
	err := s.gw.Put(ctx, fmt.Sprintf("/admin/categories/%d/deactivate", id), nil, nil)
	return errors.Wrap(err, "[AdminService.DeactivateCategory]")
}

// Categories lists the category tree (shared endpoint with the
// marketplace app).
func (s *AdminService) Categories(ctx context.Context) ([]marketplace.Category, error) {
	var out []marketplace.Category
	if err := s.gw.Get(ctx, "/categories", nil, &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.Categories]")
	}
	return out, nil
}
