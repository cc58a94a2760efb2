package models

import (
	"strconv"
	"strings"
	"time"
)

// Tag is a user-defined label applicable to any number of the owner's wishes.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Color     string    `gorm:"not null;default:'#6B7280'" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Tag) TableName() string {
	return "tags"
}

// TextColor returns a contrasting text color (black or white) for the tag's
// fill color, based on perceived luminance. Unparseable colors get white text.
func (t Tag) TextColor() string {
	hex := strings.TrimPrefix(t.Color, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return "#FFFFFF"
	}
	r, errR := strconv.ParseUint(hex[0:2], 16, 8)
	g, errG := strconv.ParseUint(hex[2:4], 16, 8)
	b, errB := strconv.ParseUint(hex[4:6], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return "#FFFFFF"
	}

	luminance := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
	if luminance > 0.5 {
		return "#000000"
	}
	return "#FFFFFF"
}
