package model

import "time"

// UsernameAlias maps a historical username to its holder's current one.
// Every alias row owned by a user points at the same current_username; the
// rename transaction repoints them all so redirects are always one hop.
type UsernameAlias struct {
	OldUsername     string `gorm:"primaryKey;type:varchar(24)"`
	CurrentUsername string `gorm:"type:varchar(24);not null"`
	UserID          string `gorm:"type:varchar(36);index:idx_alias_user;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (UsernameAlias) TableName() string { return "username_aliases" }
