package entity

import (
	"time"
)

type Base struct {
	ID        int       `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type BaseSimple struct {
	ID int `gorm:"primaryKey;autoIncrement"`
}
