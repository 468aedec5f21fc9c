package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func init() {
	// prices travel as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

var Roles = []string{RoleCustomer, RoleSeller, RoleAdmin}

const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

var OrderStatuses = []string{OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}

const (
	ActionAdd    = "add"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// AnonymousActor is the admin_name of audit rows written without a token.
const AnonymousActor = "anonymous"

const (
	TableUsers    = "users"
	TableProducts = "products"
	TableOrders   = "orders"
)

type User struct {
	ID           uint    `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Name         string  `gorm:"size:255;not null"                       json:"name"`
	Email        string  `gorm:"size:255;uniqueIndex;not null"           json:"email"`
	PasswordHash string  `gorm:"column:password;size:255;not null"       json:"-"`
	PhoneNumber  *string `gorm:"size:20"                                 json:"phone_number"`
	Address      *string `gorm:"type:text"                               json:"address"`
	Role         string  `gorm:"size:16;not null"                        json:"role"`
}

func (User) TableName() string { return TableUsers }

type Product struct {
	ID          uint            `gorm:"column:product_id;primaryKey;autoIncrement"                json:"product_id"`
	SellerID    uint            `gorm:"index;not null"                                            json:"seller_id"`
	Seller      *User           `gorm:"foreignKey:SellerID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	Name        string          `gorm:"size:255;not null"                                         json:"name"`
	Description *string         `gorm:"type:text"                                                 json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"                               json:"price"`
	Stock       int             `gorm:"not null;check:stock >= 0"                                 json:"stock"`
	Category    *string         `gorm:"size:100"                                                  json:"category"`
}

func (Product) TableName() string { return TableProducts }

type Order struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	UserID      uint            `gorm:"index;not null"               json:"user_id"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null"  json:"total_amount"`
	Status      string          `gorm:"size:32;not null"             json:"status"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"               json:"created_at"`
}

func (Order) TableName() string { return TableOrders }

type AdminActivityLog struct {
	ID          uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminName   string            `gorm:"size:255;not null"        json:"admin_name"`
	Action      string            `gorm:"size:16;not null"         json:"action"`
	TargetTable string            `gorm:"size:32;not null"         json:"target_table"`
	TargetID    uint              `gorm:"index"                    json:"target_id"`
	Details     datatypes.JSONMap `gorm:"type:json"                json:"details,omitempty"`
	Timestamp   time.Time         `gorm:"autoCreateTime"           json:"timestamp"`
}

func (AdminActivityLog) TableName() string { return "admin_activity_logs" }

// All lists every persisted model in migration order.
func All() []any {
	return []any{&User{}, &Product{}, &Order{}, &AdminActivityLog{}}
}
