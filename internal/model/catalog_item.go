package model

import "time"

// CatalogItem visibility in addition to the shared public/followers_only
// values. Inherit defers to the owner's profile visibility at read time.
const VisibilityInherit = "inherit"

// CatalogItem is a book on somebody's shelf.
type CatalogItem struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	OwnerID    string `gorm:"type:varchar(36);index:idx_item_owner;not null"`
	Title      string `gorm:"type:varchar(512);not null"`
	Author     string `gorm:"type:varchar(256)"`
	ISBN       string `gorm:"type:varchar(17);index:idx_item_isbn"`
	Visibility string `gorm:"type:varchar(16);not null;default:inherit"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CatalogItem) TableName() string { return "catalog_items" }
