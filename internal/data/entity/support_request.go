package entity

type SupportRequest struct {
	BaseSimple
	SupportDescription string `gorm:"size:1000"`
	OrderID            int    `gorm:"not null;index"`
	UserID             int    `gorm:"not null;index"`
	SupportStatus      *bool

	User  *User  `gorm:"foreignKey:UserID"`
	Order *Order `gorm:"foreignKey:OrderID"`
}
