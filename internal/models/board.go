package models

import "time"

// Board is a top-level container owned by exactly one user and shared with
// zero or more members. Deleting a board removes its memberships and lists.
type Board struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"size:255;not null" json:"name"`
	Description *string       `gorm:"size:2000" json:"description"`
	OwnerID     uint          `gorm:"index;not null" json:"owner_id"`
	Owner       *User         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members     []BoardMember `gorm:"foreignKey:BoardID" json:"members,omitempty"`
	Lists       []List        `gorm:"foreignKey:BoardID" json:"lists,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Board) TableName() string { return "boards" }

// ResolveRole computes the caller's effective role from the board's owner id
// and its loaded membership roster. Membership can change between requests,
// so the role is recomputed on every authorization-sensitive request and
// never cached. Members must be preloaded.
func (b *Board) ResolveRole(userID uint) Role {
	if b.OwnerID == userID {
		return RoleOwner
	}
	for i := range b.Members {
		if b.Members[i].UserID == userID {
			if b.Members[i].Role == RoleAdmin {
				return RoleAdmin
			}
			return RoleMember
		}
	}
	return RoleNone
}
