package api

import (
	"net/http"
	"strings"
	"time"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/unit"
	resdto "cabinstay/internal/handler/dto/response"
	"cabinstay/internal/handler/httperr"
	"cabinstay/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// Check answers GET /availability?unit=<id-or-code>&check_in=&check_out=.
// The unit parameter accepts a uuid or a legacy unit code.
func (h *AvailabilityHandler) Check(c *gin.Context) {
	ref, err := parseUnitParam(c.Query("unit"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	checkIn, err := time.Parse("2006-01-02", c.Query("check_in"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid check_in date", nil)
		return
	}
	checkOut, err := time.Parse("2006-01-02", c.Query("check_out"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid check_out date", nil)
		return
	}

	stay, err := booking.NewStayRange(checkIn, checkOut)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "check_out must be after check_in", nil)
		return
	}

	available := h.q.CheckAvailability(c.Request.Context(), ref, stay)

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		Available: available,
		CheckIn:   stay.CheckIn().Format("2006-01-02"),
		CheckOut:  stay.CheckOut().Format("2006-01-02"),
	})
}

func parseUnitParam(raw string) (unit.Ref, error) {
	raw = strings.TrimSpace(raw)
	if id, err := uuid.Parse(raw); err == nil {
		return unit.NewRef(id, "")
	}
	return unit.NewRef(uuid.Nil, raw)
}
