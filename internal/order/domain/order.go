package domain

import (
	"context"
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumacart/storefront/pkg/jsonfield"
)

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPix        PaymentMethod = "pix"
	PaymentBoleto     PaymentMethod = "boleto"
)

// PaymentStatus tracks the payment lifecycle.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Status tracks fulfilment.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Address is a JSON column holding a Brazilian-style postal address.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
}

func (a Address) Value() (driver.Value, error) { return jsonfield.Value(a) }
func (a *Address) Scan(src any) error          { return jsonfield.Scan(a, src) }

// ItemVariant is the variant snapshot frozen onto an order item.
type ItemVariant struct {
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
}

func (v ItemVariant) Value() (driver.Value, error) { return jsonfield.Value(v) }
func (v *ItemVariant) Scan(src any) error          { return jsonfield.Scan(v, src) }

// Order is the purchase header. Money columns are DECIMAL(10,2); the total
// must equal subtotal + shipping + tax - discount.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNumber     string          `gorm:"column:order_number;size:50;uniqueIndex;not null" json:"orderNumber"`
	UserID          *uint           `gorm:"column:user_id" json:"userId"`
	CustomerName    string          `gorm:"column:customer_name;size:255;not null" json:"customerName"`
	CustomerEmail   string          `gorm:"column:customer_email;size:320" json:"customerEmail"`
	CustomerPhone   string          `gorm:"column:customer_phone;size:20" json:"customerPhone"`
	ShippingAddress *Address        `gorm:"column:shipping_address;type:json" json:"shippingAddress"`
	BillingAddress  *Address        `gorm:"column:billing_address;type:json" json:"billingAddress"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	ShippingCost    decimal.Decimal `gorm:"column:shipping_cost;type:decimal(10,2);default:0" json:"shippingCost"`
	Discount        decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"discount"`
	Tax             decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"tax"`
	Total           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	PaymentMethod   PaymentMethod   `gorm:"column:payment_method;type:enum('credit_card','debit_card','pix','boleto');not null" json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `gorm:"column:payment_status;type:enum('pending','paid','failed','refunded');default:'pending';not null" json:"paymentStatus"`
	OrderStatus     Status          `gorm:"column:order_status;type:enum('pending','confirmed','processing','shipped','delivered','cancelled');default:'pending';not null" json:"orderStatus"`
	ShippingMethod  string          `gorm:"column:shipping_method;size:100" json:"shippingMethod"`
	TrackingCode    string          `gorm:"column:tracking_code;size:100" json:"trackingCode"`
	Notes           string          `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (Order) TableName() string { return "orders" }

// ExpectedTotal recomputes the total from the component amounts.
func (o *Order) ExpectedTotal() decimal.Decimal {
	return o.Subtotal.Add(o.ShippingCost).Add(o.Tax).Sub(o.Discount)
}

// OrderItem is a line frozen at purchase time. Product name, image and price
// are snapshots so later catalog edits never rewrite history.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"column:order_id;not null" json:"orderId"`
	ProductID    uint            `gorm:"column:product_id;not null" json:"productId"`
	ProductName  string          `gorm:"column:product_name;size:255;not null" json:"productName"`
	ProductImage string          `gorm:"column:product_image;type:text" json:"productImage"`
	Variant      *ItemVariant    `gorm:"type:json" json:"variant"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:decimal(10,2);not null" json:"totalPrice"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (OrderItem) TableName() string { return "order_items" }

// OrderListOptions narrows an order listing. Search matches order number,
// customer name and customer email.
type OrderListOptions struct {
	Search        string
	Status        Status
	PaymentStatus PaymentStatus
	Limit         int
	Offset        int
}

// OrderUpdate carries the admin-editable fields. Nil fields are untouched.
type OrderUpdate struct {
	OrderStatus   *Status
	PaymentStatus *PaymentStatus
	TrackingCode  *string
	Notes         *string
}

// OrderRepository is the persistence port for orders and their items.
type OrderRepository interface {
	// Create inserts the header and its items atomically. A failure on any
	// item leaves no trace of the order.
	Create(ctx context.Context, o *Order, items []OrderItem) error
	List(ctx context.Context, opts OrderListOptions) ([]Order, error)
	// GetByID returns the order or nil when absent.
	GetByID(ctx context.Context, id uint) (*Order, error)
	// ItemsByOrderID returns the lines belonging to an order.
	ItemsByOrderID(ctx context.Context, orderID uint) ([]OrderItem, error)
	Update(ctx context.Context, id uint, u OrderUpdate) error
	// Recent returns the newest orders.
	Recent(ctx context.Context, limit int) ([]Order, error)
	Count(ctx context.Context) (int64, error)
	// PaidRevenue sums the total of orders whose payment settled.
	PaidRevenue(ctx context.Context) (decimal.Decimal, error)
}
