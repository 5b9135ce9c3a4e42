package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"cabinstay/internal/domain/booking"
	reqdto "cabinstay/internal/handler/dto/request"
	resdto "cabinstay/internal/handler/dto/response"
	"cabinstay/internal/handler/httperr"
	"cabinstay/internal/pkg/errs"
	"cabinstay/internal/usecase/commands"
	"cabinstay/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds   commands.BookingCommands
	q      queries.BookingQueries
	quote  queries.QuoteQueries
	logger *slog.Logger
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries, quote queries.QuoteQueries, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, quote: quote, logger: logger}
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	view, err := h.cmds.CreateBooking(c.Request.Context(), in)
	if err != nil {
		abortBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(c, view))
}

func (h *BookingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	view, err := h.cmds.UpdateBooking(c.Request.Context(), id, in)
	if err != nil {
		abortBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toResponse(c, view))
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toResponse(c, view))
}

func (h *BookingHandler) List(c *gin.Context) {
	filter, err := parseBookingFilter(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	var after *queries.Cursor
	if v := c.Query("after"); v != "" {
		after = &queries.Cursor{After: v}
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := parsePositiveInt(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	items, next, err := h.q.List(c.Request.Context(), filter, after, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
		return
	}

	resp := resdto.BookingListResponse{Items: make([]*resdto.BookingListItem, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, resdto.FromBookingListItem(item))
	}
	if next != nil {
		resp.NextCursor = &next.After
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	next := booking.Status(req.Status)
	if !next.IsValid() {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrInvalidTransition, "Unknown status", nil)
		return
	}

	if err := h.cmds.ChangeStatus(c.Request.Context(), id, next); err != nil {
		abortBookingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) ChangePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.ChangePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	next := booking.PaymentStatus(req.PaymentStatus)
	if !next.IsValid() {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrDomainValidation, "Unknown payment status", nil)
		return
	}

	if err := h.cmds.ChangePayment(c.Request.Context(), id, next); err != nil {
		abortBookingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	if err := h.cmds.DeleteBooking(c.Request.Context(), id); err != nil {
		abortBookingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	query, err := req.ToQuery()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	view, err := h.quote.Quote(c.Request.Context(), query)
	if err != nil {
		abortBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}

// toResponse attaches the group member rows when the booking leads one. A
// failed member read degrades to a member-less response rather than failing
// the whole request.
func (h *BookingHandler) toResponse(c *gin.Context, view *queries.BookingView) *resdto.BookingResponse {
	var members []*queries.BookingListItem
	if view.GroupID != nil {
		var err error
		members, err = h.q.GroupMembers(c.Request.Context(), *view.GroupID)
		if err != nil {
			h.logger.Error("failed to load group members",
				"booking_id", view.ID, "group_id", *view.GroupID, "error", err.Error())
			members = nil
		}
	}
	return resdto.FromBookingView(view, members)
}

func abortBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, errs.ErrUnitNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Unit not found", nil)
	case errors.Is(err, errs.ErrCouponNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Coupon not found", nil)
	case errors.Is(err, errs.ErrExtraNotFound):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Unknown or inactive extra", nil)
	case errors.Is(err, errs.ErrUnitUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Unit is not available for the requested dates", nil)
	case errors.Is(err, errs.ErrCouponRejected):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, couponRejectionMessage(err), nil)
	case errors.Is(err, errs.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid status transition", nil)
	case errors.Is(err, errs.ErrInvalidStayRange), errors.Is(err, errs.ErrNoUnitsSelected):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case errors.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// couponRejectionMessage surfaces the concrete rejection reason so operators
// can relay it to the guest.
func couponRejectionMessage(err error) string {
	return "Coupon rejected: " + rootMessage(err)
}

func rootMessage(err error) string {
	root := err
	for {
		unwrapped := errors.Unwrap(root)
		if unwrapped == nil {
			return root.Error()
		}
		root = unwrapped
	}
}

func parseBookingFilter(c *gin.Context) (queries.BookingFilter, error) {
	var filter queries.BookingFilter

	if v := c.Query("status"); v != "" {
		if !booking.Status(v).IsValid() {
			return filter, errs.New("unknown status filter")
		}
		filter.Status = &v
	}
	if v := c.Query("unit_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errs.New("invalid unit_id filter")
		}
		filter.UnitID = &id
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errs.New("invalid from date")
		}
		filter.FromDate = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errs.New("invalid to date")
		}
		filter.ToDate = &t
	}

	return filter, nil
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errs.New("not a positive integer")
	}
	return n, nil
}
