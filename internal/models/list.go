package models

import "time"

// List is an ordered column within a board. Position is assigned once at
// creation and never reassigned; deleting siblings leaves gaps.
type List struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Position  int       `gorm:"not null" json:"position"`
	BoardID   uint      `gorm:"index;not null" json:"board_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (List) TableName() string { return "lists" }
