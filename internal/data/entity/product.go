package entity

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	Base
	ProductName   string          `gorm:"size:200;not null"`
	Description   string          `gorm:"size:1000"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	StockQuantity int             `gorm:"not null"`
	LabID         int             `gorm:"index"`
	SubcategoryID int             `gorm:"not null;index"`
}

type Subcategory struct {
	BaseSimple
	SubcategoryName string    `gorm:"size:150;not null"`
	Products        []Product `gorm:"foreignKey:SubcategoryID"`
}
