package models

import "time"

// Role is a caller's effective privilege level on a board.
type Role string

const (
	// RoleOwner is synthesized from Board.OwnerID; it is never stored in a
	// membership row.
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleNone   Role = "none"
)

// CanView reports whether the role grants read access to a board.
func (r Role) CanView() bool { return r != RoleNone }

// CanAdminister reports whether the role grants board deletion and
// membership management. Owner and admin are privilege-equivalent.
func (r Role) CanAdminister() bool { return r == RoleOwner || r == RoleAdmin }

// Label is the role string exposed over the API. The owner is labelled
// "admin"; the owner/admin distinction only matters internally.
func (r Role) Label() string {
	if r == RoleOwner {
		return string(RoleAdmin)
	}
	return string(r)
}

// BoardMember grants a non-owner user access to a board with a role.
// Rows are unique per (board, user); duplicate invites are absorbed.
type BoardMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BoardID   uint      `gorm:"uniqueIndex:idx_board_user;not null" json:"board_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_board_user;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      Role      `gorm:"size:20;default:member" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (BoardMember) TableName() string { return "board_members" }
