package services

import (
	"errors"
	"strings"
	"time"

	"github.com/tasklane/tasklane/internal/models"
	"github.com/tasklane/tasklane/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BoardService manages the board aggregate: the board row, its membership
// roster and its lists as one consistency unit.
type BoardService struct {
	db *gorm.DB
}

func NewBoardService(db *gorm.DB) *BoardService {
	return &BoardService{db: db}
}

type CreateBoardRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"` // invite emails, resolved by exact match
}

type BoardMemberEntry struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type BoardResponse struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	Description   *string            `json:"description"`
	Owner         models.PublicUser  `json:"owner"`
	Members       []BoardMemberEntry `json:"members"`
	Lists         []models.List      `json:"lists,omitempty"`
	Role          string             `json:"role"`
	UnknownEmails []string           `json:"unknown_emails,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// Create creates a board owned by ownerID and invites the given emails as
// members. Emails that match no account are skipped and reported back in
// UnknownEmails; inviting an already-added user is a no-op. The board row
// and all membership rows are written in one transaction.
func (s *BoardService) Create(req *CreateBoardRequest, ownerID uint) (*BoardResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, response.NewBadRequest("board name is required")
	}

	var description *string
	if req.Description != "" {
		description = &req.Description
	}

	invites := normalizeEmails(req.Members)

	board := models.Board{
		Name:        req.Name,
		Description: description,
		OwnerID:     ownerID,
	}

	var unknown []string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&board).Error; err != nil {
			return err
		}

		if len(invites) == 0 {
			return nil
		}

		var users []models.User
		if err := tx.Where("email IN ?", invites).Find(&users).Error; err != nil {
			return err
		}

		found := make(map[string]bool, len(users))
		members := make([]models.BoardMember, 0, len(users))
		for _, u := range users {
			found[u.Email] = true
			// The owner's authority comes from boards.owner_id; a roster
			// row for the owner would be redundant.
			if u.ID == ownerID {
				continue
			}
			members = append(members, models.BoardMember{
				BoardID: board.ID,
				UserID:  u.ID,
				Role:    models.RoleMember,
			})
		}

		for _, email := range invites {
			if !found[email] {
				unknown = append(unknown, email)
			}
		}

		if len(members) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&members).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	hydrated, err := s.fetch(board.ID, false)
	if err != nil {
		return nil, err
	}

	resp := buildBoardResponse(hydrated, ownerID, false)
	resp.UnknownEmails = unknown
	return &resp, nil
}

// List returns all boards the user owns or belongs to, most recently
// touched first, each annotated with the caller's effective role.
func (s *BoardService) List(userID uint) ([]BoardResponse, error) {
	memberOf := s.db.Model(&models.BoardMember{}).
		Select("board_id").
		Where("user_id = ?", userID)

	var boards []models.Board
	if err := s.db.
		Preload("Owner").
		Preload("Members.User").
		Where("owner_id = ? OR id IN (?)", userID, memberOf).
		Order("updated_at DESC").
		Find(&boards).Error; err != nil {
		return nil, err
	}

	result := make([]BoardResponse, 0, len(boards))
	for i := range boards {
		result = append(result, buildBoardResponse(&boards[i], userID, false))
	}
	return result, nil
}

// Get returns a board with its roster and lists. The caller must be the
// owner or on the roster.
func (s *BoardService) Get(boardID, userID uint) (*BoardResponse, error) {
	board, err := s.fetch(boardID, true)
	if err != nil {
		return nil, err
	}

	role := board.ResolveRole(userID)
	if !role.CanView() {
		return nil, response.NewForbidden("you are not allowed to view this board")
	}

	resp := buildBoardResponse(board, userID, true)
	return &resp, nil
}

// Delete removes a board together with its membership roster and lists in
// one transaction. Requires owner or admin role.
func (s *BoardService) Delete(boardID, userID uint) error {
	board, err := s.fetch(boardID, false)
	if err != nil {
		return err
	}

	role := board.ResolveRole(userID)
	if !role.CanAdminister() {
		return response.NewForbidden("you are not allowed to delete this board")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", boardID).Delete(&models.BoardMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", boardID).Delete(&models.List{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Board{}, boardID).Error
	})
}

// fetch loads a board with its owner and roster, optionally with lists
// ordered by position.
func (s *BoardService) fetch(boardID uint, withLists bool) (*models.Board, error) {
	query := s.db.Preload("Owner").Preload("Members.User")
	if withLists {
		query = query.Preload("Lists", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
	}

	var board models.Board
	if err := query.First(&board, boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("board not found")
		}
		return nil, err
	}
	return &board, nil
}

func buildBoardResponse(b *models.Board, userID uint, withLists bool) BoardResponse {
	role := b.ResolveRole(userID)
	if role == models.RoleNone {
		role = models.RoleMember
	}

	members := make([]BoardMemberEntry, 0, len(b.Members))
	for _, m := range b.Members {
		entry := BoardMemberEntry{Role: string(m.Role)}
		if m.User != nil {
			entry.ID = m.User.ID
			entry.Email = m.User.Email
			entry.Name = m.User.Name
		}
		members = append(members, entry)
	}

	resp := BoardResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Members:     members,
		Role:        role.Label(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.Owner != nil {
		resp.Owner = b.Owner.Public()
	}
	if withLists {
		resp.Lists = b.Lists
	}
	return resp
}

func normalizeEmails(emails []string) []string {
	seen := make(map[string]bool, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
