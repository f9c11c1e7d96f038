package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type DeliveryStatus string

// Labels are stored and exchanged verbatim.
const (
	DeliveryStatusPlaced    DeliveryStatus = "Đã đặt hàng"
	DeliveryStatusShipping  DeliveryStatus = "Đang giao hàng"
	DeliveryStatusDelivered DeliveryStatus = "Đã giao hàng"
)

// deliveryTransitions is the allow-list of forward moves. Delivered is terminal.
var deliveryTransitions = map[DeliveryStatus]DeliveryStatus{
	DeliveryStatusPlaced:   DeliveryStatusShipping,
	DeliveryStatusShipping: DeliveryStatusDelivered,
}

// ParseDeliveryStatus returns the status for an exact label match.
func ParseDeliveryStatus(label string) (DeliveryStatus, bool) {
	switch s := DeliveryStatus(label); s {
	case DeliveryStatusPlaced, DeliveryStatusShipping, DeliveryStatusDelivered:
		return s, true
	}
	return "", false
}

// Next returns the single legal successor of s, if any.
func (s DeliveryStatus) Next() (DeliveryStatus, bool) {
	next, ok := deliveryTransitions[s]
	return next, ok
}

func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

// Available returns the current status followed by its legal successor.
func (s DeliveryStatus) Available() []string {
	statuses := []string{string(s)}
	if next, ok := s.Next(); ok {
		statuses = append(statuses, string(next))
	}
	return statuses
}

type Order struct {
	Base
	UserID         int             `gorm:"not null;index"`
	OrderDate      time.Time       `gorm:"type:date;not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DeliveryStatus DeliveryStatus  `gorm:"size:50;not null"`
	SupportStatus  bool            `gorm:"not null"`

	User         *User         `gorm:"foreignKey:UserID"`
	OrderDetails []OrderDetail `gorm:"foreignKey:OrderID"`
}

type OrderDetail struct {
	BaseSimple
	OrderID            int             `gorm:"not null;index"`
	ProductID          int             `gorm:"not null;index"`
	Quantity           int             `gorm:"not null"`
	Price              decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ProductDescription string          `gorm:"size:500"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
