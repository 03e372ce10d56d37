package model

import "time"

// Profile visibility values. Anything else that ends up in the column is
// treated as followers_only by the resolver.
const (
	VisibilityPublic        = "public"
	VisibilityFollowersOnly = "followers_only"
)

// Profile is the account-facing identity row. The username is unique in its
// normalized form; all writes to it go through the rename transaction.
type Profile struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	Username   string `gorm:"type:varchar(24);uniqueIndex:idx_profile_username;not null"`
	Visibility string `gorm:"type:varchar(16);not null;default:followers_only"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Profile) TableName() string { return "profiles" }
