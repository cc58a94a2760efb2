package models

import (
	"time"
)

// WishStatus represents the reservation lifecycle of a wish.
type WishStatus string

const (
	// WishStatusOpen indicates the wish has not been reserved by anyone.
	WishStatusOpen WishStatus = "open"
	// WishStatusPurchased indicates someone has reserved the wish as a gift.
	WishStatusPurchased WishStatus = "purchased"
	// WishStatusFulfilled indicates the owner confirmed receiving the gift.
	WishStatusFulfilled WishStatus = "fulfilled"
)

// WishPrivacy controls who may view a wish.
type WishPrivacy string

const (
	// WishPrivacyPrivate makes the wish visible to its owner only.
	WishPrivacyPrivate WishPrivacy = "private"
	// WishPrivacyFriends makes the wish visible to accepted friends.
	WishPrivacyFriends WishPrivacy = "friends"
	// WishPrivacyLink makes the wish visible to anyone holding its share token.
	WishPrivacyLink WishPrivacy = "link"
)

// QuantityUnlimited is the sentinel for wishes without a quantity cap.
const QuantityUnlimited = -1

// Wish represents one desired item on a user's wishlist.
type Wish struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	Name          string      `gorm:"not null" json:"name"`
	Price         float64     `gorm:"not null" json:"price"`
	PriorityLevel int         `gorm:"not null;default:1" json:"priority_level"`
	Links         []string    `gorm:"serializer:json" json:"links"`
	ImageURL      string      `json:"image_url"`
	Description   string      `gorm:"type:text" json:"description"`
	Quantity      int         `gorm:"not null;default:1" json:"quantity"`
	PrivacyLevel  WishPrivacy `gorm:"type:varchar(20);default:'private'" json:"privacy_level"`
	ShareToken    string      `gorm:"index" json:"share_token,omitempty"`
	Status        WishStatus  `gorm:"type:varchar(20);default:'open';index" json:"status"`
	TagIDs        []uint      `gorm:"serializer:json" json:"tag_ids"`
	PurchasedBy   *string     `json:"purchased_by,omitempty"`
	PurchaseDate  *time.Time  `json:"purchase_date,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Wish) TableName() string {
	return "wishes"
}

// IsUnlimited reports whether the wish has no quantity cap.
func (w *Wish) IsUnlimited() bool {
	return w.Quantity == QuantityUnlimited
}

// HasTag reports whether the wish references the given tag.
func (w *Wish) HasTag(tagID uint) bool {
	for _, id := range w.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// WithoutTag returns the wish's tag ids with the given tag removed.
func (w *Wish) WithoutTag(tagID uint) []uint {
	out := make([]uint, 0, len(w.TagIDs))
	for _, id := range w.TagIDs {
		if id != tagID {
			out = append(out, id)
		}
	}
	return out
}

// PriorityText returns the display label for a priority level.
func PriorityText(level int) string {
	switch level {
	case 1:
		return "Low"
	case 2:
		return "Medium"
	case 3:
		return "High"
	default:
		return "Unknown"
	}
}
