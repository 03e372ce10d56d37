package model

import "time"

// FollowEdge status values. Transitions: pending -> approved | rejected,
// delete from any state returns the pair to absent.
const (
	FollowPending  int16 = 0
	FollowApproved int16 = 1
	FollowRejected int16 = 2
)

// FollowEdge is a directed follow relationship (follower -> followee).
type FollowEdge struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	FollowerID string `gorm:"type:varchar(36);index:idx_follow_follower;index:idx_follow_pair,unique;not null"`
	FolloweeID string `gorm:"type:varchar(36);not null;index:idx_follow_followee;index:idx_follow_pair,unique"`
	// idx_follow_pair = (follower_id, followee_id), at most one edge per
	// ordered pair regardless of status
	Status    int16 `gorm:"type:smallint;not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FollowEdge) TableName() string { return "follow_edges" }
