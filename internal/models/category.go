package models

import (
	"time"
)

// CategoryType classifies the purpose of the records filed under a category.
type CategoryType string

const (
	CategoryFixedExpense         CategoryType = "fixed"         // obligatory recurring expense
	CategoryNecessaryExpense     CategoryType = "necessary"     // survival expense
	CategoryDiscretionaryExpense CategoryType = "discretionary" // luxury expense
	CategoryIncome               CategoryType = "income"
	CategoryParent               CategoryType = "parent" // administrative grouping node
)

func (t CategoryType) Valid() bool {
	switch t {
	case CategoryFixedExpense, CategoryNecessaryExpense,
		CategoryDiscretionaryExpense, CategoryIncome, CategoryParent:
		return true
	}
	return false
}

// Category is a node in the per-owner classification tree. Path is the
// materialized ancestry ("12/37/51/", self id last) and Depth the distance
// from the root, both maintained on every insert, move and delete so tree
// reads never walk parents at request time.
type Category struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	OwnerID      *uint        `gorm:"index" json:"-"` // nil for global categories
	Owner        *User        `gorm:"foreignKey:OwnerID" json:"-"`
	Name         string       `gorm:"size:255;not null" json:"name"`
	Description  string       `gorm:"size:255" json:"description"`
	ParentID     *uint        `gorm:"index" json:"parent"`
	Parent       *Category    `gorm:"foreignKey:ParentID" json:"-"`
	Children     []Category   `gorm:"foreignKey:ParentID" json:"-"`
	CategoryType CategoryType `gorm:"size:16;not null;default:fixed" json:"category_type"`
	Path         string       `gorm:"size:255;index" json:"-"`
	Depth        int          `gorm:"not null;default:0" json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
