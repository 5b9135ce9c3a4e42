//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/handler/api"
	reqdto "cabinstay/internal/handler/dto/request"
	"cabinstay/internal/pkg/errs"
	"cabinstay/tests/common/builder"
	"cabinstay/tests/common/httptest"
	commandsmock "cabinstay/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BlockedDateHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBlockedDateCommands
	handler      *api.BlockedDateHandler
}

func (s *BlockedDateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBlockedDateCommands(s.mockCtrl)
	s.handler = api.NewBlockedDateHandler(s.mockCommands)

	s.router.POST("/blocked-dates", s.handler.Block)
	s.router.DELETE("/blocked-dates", s.handler.Unblock)
}

func (s *BlockedDateHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBlockedDateHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BlockedDateHandlerTestSuite))
}

func (s *BlockedDateHandlerTestSuite) blockRequest(ub *builder.UnitBuilder, from, to string) reqdto.BlockedDatesRequest {
	id := ub.ID
	return reqdto.BlockedDatesRequest{
		Unit:     reqdto.UnitRefRequest{ID: &id},
		CheckIn:  from,
		CheckOut: to,
	}
}

func (s *BlockedDateHandlerTestSuite) TestBlock() {
	s.Run("blocks a range and returns 204", func() {
		ub := builder.NewUnitBuilder()
		s.mockCommands.EXPECT().BlockRange(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, ref unit.Ref, stay booking.StayRange) error {
				s.Equal(ub.ID, ref.ID())
				s.Equal(2, stay.Nights())
				return nil
			})

		w := httptest.PerformRequest(s.T(), s.router, "POST", "/blocked-dates",
			s.blockRequest(ub, "2026-03-02", "2026-03-04"), "")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("unknown unit maps to 404", func() {
		ub := builder.NewUnitBuilder()
		s.mockCommands.EXPECT().BlockRange(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errs.ErrUnitNotFound)

		w := httptest.PerformRequest(s.T(), s.router, "POST", "/blocked-dates",
			s.blockRequest(ub, "2026-03-02", "2026-03-04"), "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Unit not found")
	})

	s.Run("inverted range is a 400", func() {
		ub := builder.NewUnitBuilder()
		w := httptest.PerformRequest(s.T(), s.router, "POST", "/blocked-dates",
			s.blockRequest(ub, "2026-03-04", "2026-03-02"), "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
	})

	s.Run("missing unit is a 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, "POST", "/blocked-dates",
			map[string]string{"from": "2026-03-02", "to": "2026-03-04"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
	})
}

func (s *BlockedDateHandlerTestSuite) TestUnblock() {
	s.Run("unblocks a range and returns 204", func() {
		ub := builder.NewUnitBuilder()
		s.mockCommands.EXPECT().UnblockRange(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, "DELETE", "/blocked-dates",
			s.blockRequest(ub, "2026-03-02", "2026-03-04"), "")
		s.Equal(http.StatusNoContent, w.Code)
	})
}
