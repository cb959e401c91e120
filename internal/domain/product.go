package domain

import "time"

// Product is the slice of the catalog the ordering flow cares about: a
// stable identifier, the current unit price in minor currency units, and
// the quantity still available for sale. Quantity is only ever decremented
// through the inventory ledger's conditional reservation, so it can never
// go negative.
type Product struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Price     int64     `json:"price" gorm:"not null"`
	Quantity  int64     `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
