//go:build unit

package api_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"cabinstay/internal/handler/api"
	resdto "cabinstay/internal/handler/dto/response"
	"cabinstay/internal/pkg/errs"
	"cabinstay/internal/usecase/queries"
	"cabinstay/tests/common/builder"
	"cabinstay/tests/common/httptest"
	commandsmock "cabinstay/tests/mock/commands"
	queriesmock "cabinstay/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	mockQuote    *queriesmock.MockQuoteQueries
	logBuf       bytes.Buffer
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.mockQuote = queriesmock.NewMockQuoteQueries(s.mockCtrl)
	s.logBuf.Reset()
	logger := slog.New(slog.NewTextHandler(&s.logBuf, nil))
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries, s.mockQuote, logger)

	s.router.POST("/bookings", s.handler.Create)
	s.router.POST("/bookings/quote", s.handler.Quote)
	s.router.GET("/bookings", s.handler.List)
	s.router.GET("/bookings/:id", s.handler.Get)
	s.router.PUT("/bookings/:id", s.handler.Update)
	s.router.PATCH("/bookings/:id/status", s.handler.ChangeStatus)
	s.router.PATCH("/bookings/:id/payment", s.handler.ChangePayment)
	s.router.DELETE("/bookings/:id", s.handler.Delete)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreate() {
	s.Run("successful creation returns 201", func() {
		bb := builder.NewBookingBuilder()
		view := bb.BuildView()
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, "POST", "/bookings", bb.BuildCreateRequestDTO(), "")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal("2026-03-02", resp.CheckIn)
		s.Equal(int64(40000), resp.Total)
	})

	s.Run("group booking response carries members", func() {
		bb := builder.NewBookingBuilder()
		view := bb.BuildView()
		groupID := view.ID
		view.GroupID = &groupID

		member := builder.NewBookingBuilder().BuildListItem()
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(view, nil)
		s.mockQueries.EXPECT().GroupMembers(gomock.Any(), groupID).
			Return([]*queries.BookingListItem{bb.BuildListItem(), member}, nil)

		w := httptest.PerformRequest(s.T(), s.router, "POST", "/bookings", bb.BuildCreateRequestDTO(), "")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Len(resp.Members, 2)
	})

	s.Run("failed member read degrades to a member-less response and is logged", func() {
		bb := builder.NewBookingBuilder()
		view := bb.BuildView()
		groupID := view.ID
		view.GroupID = &groupID

		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(view, nil)
		s.mockQueries.EXPECT().GroupMembers(gomock.Any(), groupID).
			Return(nil, errs.New("connection reset"))

		w := httptest.PerformRequest(s.T(), s.router, "POST", "/bookings", bb.BuildCreateRequestDTO(), "")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Empty(resp.Members)
		s.Contains(s.logBuf.String(), "failed to load group members")
	})

	s.Run("missing guest fails binding", func() {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()
		req.Guest.Email = ""

		w := httptest.PerformRequest(s.T(), s.router, "POST", "/bookings", req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("inverted dates are a 400", func() {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()
		req.CheckIn, req.CheckOut = req.CheckOut, req.CheckIn

		w := httptest.PerformRequest(s.T(), s.router, "POST", "/bookings", req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
	})

	s.Run("unavailable unit maps to 409", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, errs.ErrUnitUnavailable)

		w := httptest.PerformRequest(s.T(), s.router, "POST", "/bookings",
			builder.NewBookingBuilder().BuildCreateRequestDTO(), "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "not available")
	})

	s.Run("rejected coupon maps to 422 with the reason", func() {
		err := errs.Mark(errs.New("coupon has expired"), errs.ErrCouponRejected)
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, err)

		w := httptest.PerformRequest(s.T(), s.router, "POST", "/bookings",
			builder.NewBookingBuilder().BuildCreateRequestDTO(), "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "Coupon rejected")
	})

	s.Run("unknown unit maps to 404", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, errs.ErrUnitNotFound)

		w := httptest.PerformRequest(s.T(), s.router, "POST", "/bookings",
			builder.NewBookingBuilder().BuildCreateRequestDTO(), "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Unit not found")
	})
}

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("found", func() {
		bb := builder.NewBookingBuilder()
		view := bb.BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, "GET", "/bookings/"+view.ID.String(), nil, "")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.GuestEmail, resp.GuestEmail)
	})

	s.Run("not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, errs.ErrBookingNotFound)

		w := httptest.PerformRequest(s.T(), s.router, "GET", "/bookings/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})

	s.Run("malformed id", func() {
		w := httptest.PerformRequest(s.T(), s.router, "GET", "/bookings/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid booking ID")
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("returns items and next cursor", func() {
		items := []*queries.BookingListItem{
			builder.NewBookingBuilder().BuildListItem(),
			builder.NewBookingBuilder().BuildListItem(),
		}
		next := &queries.Cursor{After: "opaque"}
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), nil, 0).Return(items, next, nil)

		w := httptest.PerformRequest(s.T(), s.router, "GET", "/bookings", nil, "")

		var resp resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp.Items, 2)
		s.Require().NotNil(resp.NextCursor)
		s.Equal("opaque", *resp.NextCursor)
	})

	s.Run("status filter is validated", func() {
		w := httptest.PerformRequest(s.T(), s.router, "GET", "/bookings?status=teleported", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "unknown status")
	})

	s.Run("filters pass through", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), 50).
			DoAndReturn(func(_ any, filter queries.BookingFilter, after *queries.Cursor, _ int) ([]*queries.BookingListItem, *queries.Cursor, error) {
				s.Require().NotNil(filter.Status)
				s.Equal("confirmed", *filter.Status)
				s.Require().NotNil(after)
				return nil, nil, nil
			})

		w := httptest.PerformRequest(s.T(), s.router, "GET", "/bookings?status=confirmed&limit=50&after=abc", nil, "")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})
}

func (s *BookingHandlerTestSuite) TestChangeStatus() {
	id := uuid.New()

	s.Run("valid transition returns 204", func() {
		s.mockCommands.EXPECT().ChangeStatus(gomock.Any(), id, gomock.Any()).Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, "PATCH", "/bookings/"+id.String()+"/status",
			map[string]string{"status": "confirmed"}, "")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("unknown status is rejected before the command runs", func() {
		w := httptest.PerformRequest(s.T(), s.router, "PATCH", "/bookings/"+id.String()+"/status",
			map[string]string{"status": "teleported"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Unknown status")
	})

	s.Run("invalid transition maps to 422", func() {
		s.mockCommands.EXPECT().ChangeStatus(gomock.Any(), id, gomock.Any()).Return(errs.ErrInvalidTransition)

		w := httptest.PerformRequest(s.T(), s.router, "PATCH", "/bookings/"+id.String()+"/status",
			map[string]string{"status": "checked_out"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "Invalid status transition")
	})
}

func (s *BookingHandlerTestSuite) TestChangePayment() {
	id := uuid.New()

	s.Run("valid payment status returns 204", func() {
		s.mockCommands.EXPECT().ChangePayment(gomock.Any(), id, gomock.Any()).Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, "PATCH", "/bookings/"+id.String()+"/payment",
			map[string]string{"payment_status": "paid"}, "")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("unknown payment status is a 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, "PATCH", "/bookings/"+id.String()+"/payment",
			map[string]string{"payment_status": "iou"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Unknown payment status")
	})
}

func (s *BookingHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("deletes and returns 204", func() {
		s.mockCommands.EXPECT().DeleteBooking(gomock.Any(), id).Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, "DELETE", "/bookings/"+id.String(), nil, "")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("member deletion maps to 422", func() {
		s.mockCommands.EXPECT().DeleteBooking(gomock.Any(), id).Return(errs.ErrDomainValidation)

		w := httptest.PerformRequest(s.T(), s.router, "DELETE", "/bookings/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "Validation failed")
	})
}

func (s *BookingHandlerTestSuite) TestQuote() {
	s.Run("prices without persisting", func() {
		bb := builder.NewBookingBuilder()
		s.mockQuote.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(&queries.QuoteView{
			RoomSubtotal: 40000,
			Total:        40000,
			Nights:       4,
		}, nil)

		w := httptest.PerformRequest(s.T(), s.router, "POST", "/bookings/quote", bb.BuildQuoteRequestDTO(), "")

		var resp resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(int64(40000), resp.Total)
		s.Equal(int32(4), resp.Nights)
	})

	s.Run("coupon rejection surfaces the reason", func() {
		err := errs.Mark(errs.New("booking amount is below the coupon minimum"), errs.ErrCouponRejected)
		s.mockQuote.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(nil, err)

		w := httptest.PerformRequest(s.T(), s.router, "POST", "/bookings/quote",
			builder.NewBookingBuilder().BuildQuoteRequestDTO(), "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "below the coupon minimum")
	})
}
