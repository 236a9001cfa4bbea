package models

// MethodOfPayment is a plain named tag describing how a record was paid
// (cash, debit card, wire, ...). Deleting one deletes the records tagged
// with it, unlike accounts and categories which only clear the reference.
type MethodOfPayment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OwnerID *uint  `gorm:"index" json:"-"` // nil for global methods
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"-"`
	Name    string `gorm:"size:255;not null" json:"name"`
}
