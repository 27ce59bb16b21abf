package services

import (
	"errors"
	"strings"

	"github.com/tasklane/tasklane/internal/models"
	"github.com/tasklane/tasklane/pkg/response"
	"gorm.io/gorm"
)

// ListService creates ordered lists within a board.
type ListService struct {
	db *gorm.DB
}

func NewListService(db *gorm.DB) *ListService {
	return &ListService{db: db}
}

type CreateListRequest struct {
	Name string `json:"name"`
}

// Create adds a list to the board at the next free position. Any roster
// member may create lists, not just administrators; only callers with no
// relation to the board are rejected.
func (s *ListService) Create(boardID, userID uint, req *CreateListRequest) (*models.List, error) {
	title := strings.TrimSpace(req.Name)
	if title == "" {
		return nil, response.NewBadRequest("list name is required")
	}

	var board models.Board
	if err := s.db.Preload("Members").Preload("Lists").First(&board, boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("board not found")
		}
		return nil, err
	}

	role := board.ResolveRole(userID)
	if role == models.RoleNone {
		return nil, response.NewForbidden("not authorized to add a list")
	}

	// position = max(existing positions) + 1, or 1 for the first list.
	// Gaps from deleted siblings are preserved.
	next := 1
	for _, l := range board.Lists {
		if l.Position >= next {
			next = l.Position + 1
		}
	}

	list := models.List{
		Title:    title,
		Position: next,
		BoardID:  boardID,
	}
	if err := s.db.Create(&list).Error; err != nil {
		return nil, err
	}

	return &list, nil
}
