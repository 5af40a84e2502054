//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/daiya0277-lgtm/gyoza-app/internal/handler/api"
	"github.com/daiya0277-lgtm/gyoza-app/internal/handler/middleware"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/adminauth"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/commands"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/queries"
	commandsmock "github.com/daiya0277-lgtm/gyoza-app/tests/mock/commands"
	queriesmock "github.com/daiya0277-lgtm/gyoza-app/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockAdmin       *commandsmock.MockAdminCommands
	mockStock       *commandsmock.MockStockCommands
	mockReservation *commandsmock.MockReservationCommands
	mockQueries     *queriesmock.MockReservationQueries
	tokens          *adminauth.TokenService
	handler         *api.AdminHandler
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockAdmin = commandsmock.NewMockAdminCommands(s.mockCtrl)
	s.mockStock = commandsmock.NewMockStockCommands(s.mockCtrl)
	s.mockReservation = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.tokens = adminauth.NewTokenService("test-secret", time.Hour)
	s.handler = api.NewAdminHandler(s.mockAdmin, s.mockStock, s.mockReservation, s.mockQueries)

	adminMw := middleware.NewAdminMiddleware(s.tokens)

	s.router.POST("/admin/login", s.handler.Login)
	guarded := s.router.Group("", adminMw.RequireAdmin())
	guarded.GET("/admin/reservations", s.handler.ListReservations)
	guarded.DELETE("/admin/reservations/:id", s.handler.CancelReservation)
	guarded.GET("/admin/summary", s.handler.GetSummary)
	guarded.PUT("/admin/products/:id/stock", s.handler.SetRemainingStock)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) authedRequest(method, url string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		s.Require().NoError(err)
	}

	token, err := s.tokens.GenerateToken(time.Now())
	s.Require().NoError(err)

	req := httptest.NewRequest(method, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AdminHandlerTestSuite) TestLogin() {
	s.Run("success", func() {
		s.mockAdmin.EXPECT().
			Login(gomock.Any(), "zemi-gyoza").
			Return(commands.AdminSession{Token: "signed-token", ExpiresAt: time.Now().Add(time.Hour)}, nil)

		body, _ := json.Marshal(map[string]string{"password": "zemi-gyoza"})
		req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), "signed-token")
	})

	s.Run("wrong password", func() {
		s.mockAdmin.EXPECT().
			Login(gomock.Any(), "nope").
			Return(commands.AdminSession{}, commands.ErrAdminUnauthorized)

		body, _ := json.Marshal(map[string]string{"password": "nope"})
		req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *AdminHandlerTestSuite) TestAuthGuard() {
	s.Run("missing token", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/reservations", nil)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("garbage token", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/reservations", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *AdminHandlerTestSuite) TestListReservations() {
	s.mockQueries.EXPECT().
		List(gomock.Any()).
		Return([]*queries.ReservationView{
			{ID: uuid.New(), CustomerName: "山田太郎", PickupTime: "09:00"},
		}, nil)

	w := s.authedRequest(http.MethodGet, "/admin/reservations", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "山田太郎")
}

func (s *AdminHandlerTestSuite) TestCancelReservation() {
	s.Run("success", func() {
		id := uuid.New()
		s.mockReservation.EXPECT().
			CancelReservation(gomock.Any(), id).
			Return(nil)

		w := s.authedRequest(http.MethodDelete, "/admin/reservations/"+id.String(), nil)
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("invalid id", func() {
		w := s.authedRequest(http.MethodDelete, "/admin/reservations/nope", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *AdminHandlerTestSuite) TestGetSummary() {
	s.mockQueries.EXPECT().
		Summary(gomock.Any()).
		Return(&queries.SalesSummary{
			Products: []queries.ProductTotal{
				{ProductID: "yaki", ProductName: "焼き餃子", ReservedQuantity: 12},
			},
			TotalSales: 3000,
		}, nil)

	w := s.authedRequest(http.MethodGet, "/admin/summary", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"totalSales":3000`)
}

func (s *AdminHandlerTestSuite) TestSetRemainingStock() {
	s.Run("success", func() {
		s.mockStock.EXPECT().
			SetRemainingStock(gomock.Any(), "yaki", int32(0)).
			Return(nil)

		w := s.authedRequest(http.MethodPut, "/admin/products/yaki/stock", map[string]any{"remainingStock": 0})
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("missing body field", func() {
		w := s.authedRequest(http.MethodPut, "/admin/products/yaki/stock", map[string]any{})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("out of range", func() {
		s.mockStock.EXPECT().
			SetRemainingStock(gomock.Any(), "yaki", int32(99)).
			Return(commands.ErrValidationFailed)

		w := s.authedRequest(http.MethodPut, "/admin/products/yaki/stock", map[string]any{"remainingStock": 99})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unknown product", func() {
		s.mockStock.EXPECT().
			SetRemainingStock(gomock.Any(), "ebi", int32(1)).
			Return(commands.ErrProductNotFound)

		w := s.authedRequest(http.MethodPut, "/admin/products/ebi/stock", map[string]any{"remainingStock": 1})
		s.Equal(http.StatusNotFound, w.Code)
	})
}
