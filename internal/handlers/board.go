package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tasklane/tasklane/internal/middleware"
	"github.com/tasklane/tasklane/internal/services"
	"github.com/tasklane/tasklane/pkg/response"
	"gorm.io/gorm"
)

type BoardHandler struct {
	boardService *services.BoardService
	listService  *services.ListService
}

func NewBoardHandler(db *gorm.DB) *BoardHandler {
	return &BoardHandler{
		boardService: services.NewBoardService(db),
		listService:  services.NewListService(db),
	}
}

// Create creates a board with optional member invites.
// POST /api/boards
func (h *BoardHandler) Create(c *gin.Context) {
	var req services.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	board, err := h.boardService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, board)
}

// List returns the caller's boards, most recently touched first.
// GET /api/boards
func (h *BoardHandler) List(c *gin.Context) {
	boards, err := h.boardService.List(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, boards)
}

// GetByID returns one board with roster and lists.
// GET /api/boards/:id
func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	board, err := h.boardService.Get(boardID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, board)
}

// Delete removes a board and everything it owns.
// DELETE /api/boards/:id
func (h *BoardHandler) Delete(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	if err := h.boardService.Delete(boardID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "board deleted successfully"})
}

// CreateList adds a list to a board.
// POST /api/boards/:id/lists
func (h *BoardHandler) CreateList(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	var req services.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	list, err := h.listService.Create(boardID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, list)
}

func parseBoardID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid board id")
		return 0, false
	}
	return uint(id), true
}
