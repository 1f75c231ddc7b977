package admin

import (
	"time"

	"github.com/stoneridge/go-marketplace-client/users"
)

// Dashboard is the admin landing page's counters.
type Dashboard struct {
	TotalUsers              int64 `json:"totalUsers"`
	TotalProducts           int64 `json:"totalProducts"`
	ActiveProducts          int64 `json:"activeProducts"`
	TotalCategories         int64 `json:"totalCategories"`
	PendingCategoryRequests int64 `json:"pendingCategoryRequests"`
}

// User is the admin view of an account, including moderation state the
// marketplace app never sees.
type User struct {
	ID               int64          `json:"id"`
	Username         string         `json:"username"`
	Email            string         `json:"email"`
	DisplayName      string         `json:"displayName"`
	FullName         string         `json:"fullName"`
	Role             users.RoleType `json:"role"`
	Enabled          bool           `json:"enabled"`
	AccountNonLocked bool           `json:"accountNonLocked"`
	EmailVerified    bool           `json:"emailVerified"`
	CreatedAt        time.Time      `json:"createdAt"`
	LastLoginAt      *time.Time     `json:"lastLoginAt,omitempty"`
}

type CategoryCreateRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	ParentCategoryID *int64 `json:"parentCategoryId,omitempty"`
}

type CategoryUpdateRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}
