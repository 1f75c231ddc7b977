package marketplace

import (
	"net/url"
	"strconv"
	"time"

	"github.com/stoneridge/go-marketplace-client/internal/utils"
	"github.com/stoneridge/go-marketplace-client/users"
)

// Page is the server's paginated list shape.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// PageParams selects a page of a listing endpoint.
type PageParams struct {
	Page int
	Size int
	Sort string
}

// Values renders the params as a query string, omitting zero values so
// the server's defaults apply.
func (p PageParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		v.Set("size", strconv.Itoa(p.Size))
	}
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	return v
}

// LoginRequest is the body of /auth/login and /auth/admin-login.
type LoginRequest struct {
	UsernameOrEmail  string `json:"usernameOrEmail"`
	Password         string `json:"password"`
	RememberDevice   bool   `json:"rememberDevice"`
	ScreenResolution string `json:"screenResolution,omitempty"`
	Timezone         string `json:"timezone,omitempty"`
}

// LoginResponse carries the token pair and principal on success.
type LoginResponse struct {
	AccessToken     string          `json:"accessToken"`
	RefreshToken    string          `json:"refreshToken"`
	TokenType       string          `json:"tokenType"`
	ExpiresIn       int64           `json:"expiresIn"`
	User            *users.User     `json:"user"`
	DeviceToken     string          `json:"deviceToken,omitempty"`
	IsDeviceTrusted bool            `json:"isDeviceTrusted,omitempty"`
	TrustedDevices  []TrustedDevice `json:"trustedDevices,omitempty"`
}

type RegistrationRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName,omitempty"`
	DisplayName     string `json:"displayName,omitempty"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ApartmentNumber string `json:"apartmentNumber,omitempty"`
	BuildingName    string `json:"buildingName,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

type RegistrationResponse struct {
	Message              string `json:"message"`
	Email                string `json:"email"`
	Username             string `json:"username"`
	RequiresVerification bool   `json:"requiresVerification"`
}

type VerificationResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Username string `json:"username"`
}

type RefreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type TrustedDevice struct {
	ID         int64     `json:"id"`
	DeviceName string    `json:"deviceName"`
	DeviceType string    `json:"deviceType"`
	LastUsedAt time.Time `json:"lastUsedAt"`
	Location   string    `json:"location"`
	IsCurrent  bool      `json:"isCurrent"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type ProfileUpdateRequest struct {
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	DisplayName     string `json:"displayName,omitempty"`
	Email           string `json:"email,omitempty"`
	ApartmentNumber string `json:"apartmentNumber,omitempty"`
	BuildingName    string `json:"buildingName,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// Product is the full listing detail payload.
type Product struct {
	ID                int64          `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Price             float64        `json:"price"`
	OriginalPrice     *float64       `json:"originalPrice,omitempty"`
	Condition         string         `json:"condition"`
	Status            string         `json:"status"`
	CategoryID        int64          `json:"categoryId"`
	CategoryName      string         `json:"categoryName"`
	CategoryPath      string         `json:"categoryPath"`
	SellerID          int64          `json:"sellerId"`
	SellerName        string         `json:"sellerName"`
	SellerDisplayName string         `json:"sellerDisplayName"`
	SellerBuilding    string         `json:"sellerBuilding"`
	SellerApartment   string         `json:"sellerApartment"`
	BuyerID           *int64         `json:"buyerId,omitempty"`
	BuyerName         string         `json:"buyerName,omitempty"`
	Images            []ProductImage `json:"images"`
	ViewCount         int            `json:"viewCount"`
	Negotiable        bool           `json:"negotiable"`
	LocationDetails   string         `json:"locationDetails"`
	ActiveChatsCount  int            `json:"activeChatsCount"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	SoldAt            *time.Time     `json:"soldAt,omitempty"`
	SoldPrice         *float64       `json:"soldPrice,omitempty"`
	IsOwner           bool           `json:"isOwner"`
	CanEdit           bool           `json:"canEdit"`
	CanChat           bool           `json:"canChat"`
}

// ProductSummary is the compact listing shape used in grids.
type ProductSummary struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Price           float64   `json:"price"`
	Condition       string    `json:"condition"`
	Status          string    `json:"status"`
	PrimaryImageURL string    `json:"primaryImageUrl"`
	CategoryName    string    `json:"categoryName"`
	SellerName      string    `json:"sellerName"`
	SellerBuilding  string    `json:"sellerBuilding"`
	ViewCount       int       `json:"viewCount"`
	Negotiable      bool      `json:"negotiable"`
	CreatedAt       time.Time `json:"createdAt"`
	IsOwner         bool      `json:"isOwner"`
}

type ProductImage struct {
	ID           int64  `json:"id"`
	ImageURL     string `json:"imageUrl"`
	FileName     string `json:"fileName"`
	Primary      bool   `json:"primary"`
	DisplayOrder int    `json:"displayOrder"`
}

type ProductCreateRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	OriginalPrice   *float64 `json:"originalPrice,omitempty"`
	Condition       string   `json:"condition"`
	CategoryID      int64    `json:"categoryId"`
	Negotiable      bool     `json:"negotiable"`
	LocationDetails string   `json:"locationDetails,omitempty"`
	ImageURLs       []string `json:"imageUrls,omitempty"`
}

type ProductUpdateRequest struct {
	Title           string   `json:"title,omitempty"`
	Description     string   `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	OriginalPrice   *float64 `json:"originalPrice,omitempty"`
	Condition       string   `json:"condition,omitempty"`
	Status          string   `json:"status,omitempty"`
	CategoryID      *int64   `json:"categoryId,omitempty"`
	Negotiable      *bool    `json:"negotiable,omitempty"`
	LocationDetails string   `json:"locationDetails,omitempty"`
	ImageURLs       []string `json:"imageUrls,omitempty"`
}

// ProductFilter narrows /products/filter.
type ProductFilter struct {
	CategoryID *int64
	MinPrice   *float64
	MaxPrice   *float64
	Condition  string
	Building   string
	Negotiable *bool
	PageParams
}

func (f ProductFilter) Values() url.Values {
	v := f.PageParams.Values()
	if f.CategoryID != nil {
		v.Set("categoryId", strconv.FormatInt(utils.Value(f.CategoryID), 10))
	}
	if f.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(utils.Value(f.MinPrice), 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(utils.Value(f.MaxPrice), 'f', -1, 64))
	}
	if f.Condition != "" {
		v.Set("condition", f.Condition)
	}
	if f.Building != "" {
		v.Set("building", f.Building)
	}
	if f.Negotiable != nil {
		v.Set("negotiable", strconv.FormatBool(utils.Value(f.Negotiable)))
	}
	return v
}

type Category struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	IconURL      string     `json:"iconUrl"`
	FullPath     string     `json:"fullPath"`
	ParentID     *int64     `json:"parentId,omitempty"`
	ParentName   string     `json:"parentName,omitempty"`
	Subcategories []Category `json:"subcategories,omitempty"`
	ProductCount int        `json:"productCount"`
	CreatedAt    time.Time  `json:"createdAt"`
	Active       bool       `json:"active"`
}

// CategoryRequest is both the submission body and the reviewed record
// of a user-proposed category.
type CategoryRequest struct {
	ID                  int64     `json:"id,omitempty"`
	Name                string    `json:"name"`
	Description         string    `json:"description,omitempty"`
	Justification       string    `json:"justification,omitempty"`
	ParentCategoryID    *int64    `json:"parentCategoryId,omitempty"`
	Status              string    `json:"status,omitempty"`
	RequestedByID       int64     `json:"requestedById,omitempty"`
	RequestedByUsername string    `json:"requestedByUsername,omitempty"`
	ParentCategoryName  string    `json:"parentCategoryName,omitempty"`
	CreatedAt           time.Time `json:"createdAt,omitempty"`
}

type Chat struct {
	ID                int64          `json:"id"`
	ProductID         int64          `json:"productId"`
	ProductTitle      string         `json:"productTitle"`
	ProductImageURL   string         `json:"productImageUrl"`
	BuyerID           int64          `json:"buyerId"`
	BuyerName         string         `json:"buyerName"`
	BuyerDisplayName  string         `json:"buyerDisplayName"`
	SellerID          int64          `json:"sellerId"`
	SellerName        string         `json:"sellerName"`
	SellerDisplayName string         `json:"sellerDisplayName"`
	Status            string         `json:"status"`
	HasUnreadMessages bool           `json:"hasUnreadMessages"`
	LastMessage       *ChatMessage   `json:"lastMessage,omitempty"`
	RecentMessages    []ChatMessage  `json:"recentMessages,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	LastMessageAt     *time.Time     `json:"lastMessageAt,omitempty"`
}

type ChatMessage struct {
	ID                int64     `json:"id"`
	ChatID            int64     `json:"chatId"`
	SenderID          int64     `json:"senderId"`
	SenderName        string    `json:"senderName"`
	SenderDisplayName string    `json:"senderDisplayName"`
	Content           string    `json:"content"`
	MessageType       string    `json:"messageType"`
	SystemMessage     bool      `json:"systemMessage"`
	CreatedAt         time.Time `json:"createdAt"`
	SentByCurrentUser bool      `json:"sentByCurrentUser"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

type Negotiation struct {
	ID            int64      `json:"id"`
	ChatID        int64      `json:"chatId"`
	OfferedByID   int64      `json:"offeredById"`
	OfferedByName string     `json:"offeredByName"`
	OfferedPrice  float64    `json:"offeredPrice"`
	OriginalPrice float64    `json:"originalPrice"`
	Message       string     `json:"message"`
	Status        string     `json:"status"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	RespondedAt   *time.Time `json:"respondedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	IsExpired     bool       `json:"isExpired"`
	CanRespond    bool       `json:"canRespond"`
	IsOwnOffer    bool       `json:"isOwnOffer"`
}

type NegotiationRequest struct {
	OfferedPrice  float64 `json:"offeredPrice"`
	Message       string  `json:"message,omitempty"`
	ValidityHours int     `json:"validityHours,omitempty"`
}
