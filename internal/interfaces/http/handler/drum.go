package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	appinventory "github.com/drumflow/backend/internal/application/inventory"
	"github.com/drumflow/backend/internal/domain/inventory"
)

// DrumHandler exposes drum read endpoints
type DrumHandler struct {
	BaseHandler
	drumService *appinventory.DrumService
}

// NewDrumHandler creates a new DrumHandler
func NewDrumHandler(drumService *appinventory.DrumService) *DrumHandler {
	return &DrumHandler{drumService: drumService}
}

// GetByID handles GET /api/v1/drums/:id
func (h *DrumHandler) GetByID(c *gin.Context) {
	var uri struct {
		ID int64 `uri:"id" binding:"required,min=1"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid drum ID")
		return
	}

	drum, err := h.drumService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		var notFound *inventory.DrumNotFoundError
		if errors.As(err, &notFound) {
			h.NotFound(c, notFound.Error())
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, drum)
}
