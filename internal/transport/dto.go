package transport

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserCreate struct {
	Name        string  `json:"name"         validate:"required,max=255"`
	Email       string  `json:"email"        validate:"required,email,max=255"`
	Password    string  `json:"password"     validate:"required,min=1,max=72"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Address     *string `json:"address"`
	Role        string  `json:"role"         validate:"required,oneof=customer seller admin"`
}

// UserUpdate is a full-record replace. Password may be left empty to keep
// the stored hash, since the caller never sees it.
type UserUpdate struct {
	Name        string  `json:"name"         validate:"required,max=255"`
	Email       string  `json:"email"        validate:"required,email,max=255"`
	Password    string  `json:"password"     validate:"omitempty,max=72"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Address     *string `json:"address"`
	Role        string  `json:"role"         validate:"required,oneof=customer seller admin"`
}

// ProductCreate also serves as the full-replace update body. Price and stock
// are pointers so a missing field fails validation instead of storing zero.
type ProductCreate struct {
	SellerID    uint             `json:"seller_id"   validate:"required"`
	Name        string           `json:"name"        validate:"required,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"       validate:"required"`
	Stock       *int             `json:"stock"       validate:"required,gte=0"`
	Category    *string          `json:"category"    validate:"omitempty,max=100"`
}

type OrderCreate struct {
	UserID      uint             `json:"user_id"      validate:"required"`
	TotalAmount *decimal.Decimal `json:"total_amount" validate:"required"`
	Status      string           `json:"status"       validate:"omitempty,max=32"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Name        string    `json:"name"`
}

// DeleteResponse always acknowledges; Found tells a real delete from a no-op.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
	Found   bool `json:"found"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
