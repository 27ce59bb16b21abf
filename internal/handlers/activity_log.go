package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/tasklane/tasklane/internal/middleware"
	"github.com/tasklane/tasklane/internal/services"
	"github.com/tasklane/tasklane/pkg/response"
)

type ActivityLogHandler struct {
	activityService *services.ActivityLogService
}

func NewActivityLogHandler(activityService *services.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{activityService: activityService}
}

// List returns the caller's own activity entries, paginated.
// GET /api/activity-logs
func (h *ActivityLogHandler) List(c *gin.Context) {
	var req services.ActivityLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.activityService.List(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}
