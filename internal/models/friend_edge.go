package models

import (
	"time"
)

// FriendEdgeStatus represents the lifecycle of a friend request.
type FriendEdgeStatus string

const (
	// FriendEdgeStatusPending indicates an unanswered friend request.
	FriendEdgeStatusPending FriendEdgeStatus = "pending"
	// FriendEdgeStatusAccepted indicates an accepted friend request.
	FriendEdgeStatusAccepted FriendEdgeStatus = "accepted"
	// FriendEdgeStatusRejected indicates a declined friend request. Rejected
	// edges stay on record so the pair does not resurface in candidate search.
	FriendEdgeStatusRejected FriendEdgeStatus = "rejected"
)

// FriendEdge is a directed relationship record between two users. The
// requester creates it as pending; only the recipient can accept or reject.
type FriendEdge struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RequesterID uint             `gorm:"not null;uniqueIndex:idx_friend_edge_pair" json:"requester_id"`
	RecipientID uint             `gorm:"not null;uniqueIndex:idx_friend_edge_pair" json:"recipient_id"`
	Status      FriendEdgeStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// TableName specifies the table name for GORM
func (FriendEdge) TableName() string {
	return "friend_edges"
}

// Involves reports whether the user is either endpoint of the edge.
func (e *FriendEdge) Involves(userID uint) bool {
	return e.RequesterID == userID || e.RecipientID == userID
}

// Counterparty returns the public profile of the other endpoint relative to
// the given user. Requester/Recipient must be preloaded.
func (e *FriendEdge) Counterparty(userID uint) Profile {
	if e.RequesterID == userID {
		return e.Recipient.Profile()
	}
	return e.Requester.Profile()
}
