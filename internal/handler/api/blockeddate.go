package api

import (
	"errors"
	"net/http"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/unit"
	reqdto "cabinstay/internal/handler/dto/request"
	"cabinstay/internal/handler/httperr"
	"cabinstay/internal/pkg/errs"
	"cabinstay/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type BlockedDateHandler struct {
	cmds commands.BlockedDateCommands
}

func NewBlockedDateHandler(cmds commands.BlockedDateCommands) *BlockedDateHandler {
	return &BlockedDateHandler{cmds: cmds}
}

func (h *BlockedDateHandler) Block(c *gin.Context) {
	ref, stay, ok := h.bind(c)
	if !ok {
		return
	}

	if err := h.cmds.BlockRange(c.Request.Context(), ref, stay); err != nil {
		abortBlockedDateError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BlockedDateHandler) Unblock(c *gin.Context) {
	ref, stay, ok := h.bind(c)
	if !ok {
		return
	}

	if err := h.cmds.UnblockRange(c.Request.Context(), ref, stay); err != nil {
		abortBlockedDateError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BlockedDateHandler) bind(c *gin.Context) (unit.Ref, booking.StayRange, bool) {
	var req reqdto.BlockedDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return unit.Ref{}, booking.StayRange{}, false
	}

	ref, stay, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return unit.Ref{}, booking.StayRange{}, false
	}
	return ref, stay, true
}

func abortBlockedDateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrUnitNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Unit not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
