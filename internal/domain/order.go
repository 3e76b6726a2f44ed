package domain

import "time"

// Order is the immutable record of a confirmed checkout. It is written once
// under the purchasing user and never updated afterwards.
type Order struct {
	ID             string      `json:"id"`
	UserID         string      `json:"-"`
	TotalCents     int64       `json:"totalCents"`
	PaymentMethod  string      `json:"paymentMethod"`
	PaymentStatus  string      `json:"paymentStatus"`
	BillingName    string      `json:"billingName"`
	BillingEmail   string      `json:"billingEmail"`
	BillingAddress string      `json:"billingAddress"`
	BillingCity    string      `json:"billingCity"`
	BillingZip     string      `json:"billingZip"`
	BillingCountry string      `json:"billingCountry"`
	CreatedAt      time.Time   `json:"createdAt"`
	Items          []OrderItem `json:"orderItems"`
}

type OrderItem struct {
	ProductID      string `json:"productId"`
	Title          string `json:"title"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}
