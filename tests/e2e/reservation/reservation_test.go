//go:build e2e

package reservation_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/daiya0277-lgtm/gyoza-app/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	productsURL     = "/api/products"
	reservationsURL = "/api/reservations"
	adminLoginURL   = "/api/admin/login"
)

type reservationSuite struct {
	e2e.SharedSuite
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(reservationSuite))
}

func (s *reservationSuite) postJSON(url string, body map[string]any, headers map[string]string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *reservationSuite) getJSON(url string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *reservationSuite) adminHeaders() map[string]string {
	w := s.postJSON(adminLoginURL, map[string]any{"password": e2e.AdminPassword}, nil)
	require.Equal(s.T(), http.StatusOK, w.Code, "管理者ログインに失敗")

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	return map[string]string{"Authorization": "Bearer " + resp.Token}
}

func (s *reservationSuite) remainingStock(productID string) int32 {
	w := s.getJSON(productsURL, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var products []struct {
		ID             string `json:"id"`
		RemainingStock int32  `json:"remainingStock"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &products))
	for _, p := range products {
		if p.ID == productID {
			return p.RemainingStock
		}
	}
	s.T().Fatalf("product %s not in catalog response", productID)
	return -1
}

func validReservation() map[string]any {
	return map[string]any{
		"customerName":  "山田太郎",
		"customerPhone": "090-1234-5678",
		"items":         map[string]int32{"yaki": 2},
		"pickupTime":    "10:00",
	}
}

func (s *reservationSuite) TestPlaceReservation() {
	s.Run("予約が作成され在庫が減ること", func() {
		w := s.postJSON(reservationsURL, validReservation(), nil)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			ID string `json:"id"`
		}
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(s.T(), resp.ID)

		require.Equal(s.T(), int32(48), s.remainingStock("yaki"))

		get := s.getJSON(reservationsURL+"/"+resp.ID, nil)
		require.Equal(s.T(), http.StatusOK, get.Code)
		require.Contains(s.T(), get.Body.String(), `"totalAmount":500`)
	})

	s.Run("在庫を超える注文は409で在庫が変わらないこと", func() {
		headers := s.adminHeaders()

		// 残り1個に設定
		body, _ := json.Marshal(map[string]any{"remainingStock": 1})
		req := httptest.NewRequest(http.MethodPut, "/api/admin/products/yaki/stock", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", headers["Authorization"])
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, req)
		require.Equal(s.T(), http.StatusNoContent, w.Code)

		res := s.postJSON(reservationsURL, validReservation(), nil)
		require.Equal(s.T(), http.StatusConflict, res.Code)
		require.Equal(s.T(), int32(1), s.remainingStock("yaki"))
	})

	s.Run("不正な入力は400になること", func() {
		invalid := validReservation()
		invalid["pickupTime"] = "19:30"

		w := s.postJSON(reservationsURL, invalid, nil)
		require.Equal(s.T(), http.StatusBadRequest, w.Code)
	})

	s.Run("同時注文でも売り越さないこと", func() {
		const buyers = 60

		var wg sync.WaitGroup
		codes := make(chan int, buyers)

		for i := range buyers {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				body := map[string]any{
					"customerName":  fmt.Sprintf("客%d", n),
					"customerPhone": "090-0000-0000",
					"items":         map[string]int32{"craft": 1},
					"pickupTime":    "12:00",
				}
				w := s.postJSON(reservationsURL, body, nil)
				codes <- w.Code
			}(i)
		}
		wg.Wait()
		close(codes)

		var created, conflicted int
		for code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			default:
				s.T().Fatalf("unexpected status %d", code)
			}
		}

		require.Equal(s.T(), 50, created, "在庫数ちょうどの予約だけ成立すること")
		require.Equal(s.T(), 10, conflicted)
		require.Equal(s.T(), int32(0), s.remainingStock("craft"))
	})
}

func (s *reservationSuite) TestCancelReservation() {
	s.Run("キャンセルで在庫が戻ること", func() {
		headers := s.adminHeaders()

		w := s.postJSON(reservationsURL, validReservation(), nil)
		require.Equal(s.T(), http.StatusCreated, w.Code)

		var resp struct {
			ID string `json:"id"`
		}
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(s.T(), int32(48), s.remainingStock("yaki"))

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/reservations/"+resp.ID, nil)
		req.Header.Set("Authorization", headers["Authorization"])
		del := httptest.NewRecorder()
		s.Router.ServeHTTP(del, req)
		require.Equal(s.T(), http.StatusNoContent, del.Code)

		require.Equal(s.T(), int32(50), s.remainingStock("yaki"))

		// 二重キャンセルも成功すること
		req2 := httptest.NewRequest(http.MethodDelete, "/api/admin/reservations/"+resp.ID, nil)
		req2.Header.Set("Authorization", headers["Authorization"])
		del2 := httptest.NewRecorder()
		s.Router.ServeHTTP(del2, req2)
		require.Equal(s.T(), http.StatusNoContent, del2.Code)
		require.Equal(s.T(), int32(50), s.remainingStock("yaki"))
	})

	s.Run("認証なしはキャンセルできないこと", func() {
		req := httptest.NewRequest(http.MethodDelete, "/api/admin/reservations/"+"00000000-0000-0000-0000-000000000000", nil)
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, req)
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *reservationSuite) TestAdminSummary() {
	s.Run("集計に予約数と売上が反映されること", func() {
		headers := s.adminHeaders()

		w := s.postJSON(reservationsURL, validReservation(), nil)
		require.Equal(s.T(), http.StatusCreated, w.Code)

		summary := s.getJSON("/api/admin/summary", headers)
		require.Equal(s.T(), http.StatusOK, summary.Code)

		var resp struct {
			Products []struct {
				ProductID        string `json:"productId"`
				ReservedQuantity int64  `json:"reservedQuantity"`
			} `json:"products"`
			TotalSales int64 `json:"totalSales"`
		}
		require.NoError(s.T(), json.Unmarshal(summary.Body.Bytes(), &resp))
		require.Equal(s.T(), int64(500), resp.TotalSales)

		for _, p := range resp.Products {
			if p.ProductID == "yaki" {
				require.Equal(s.T(), int64(2), p.ReservedQuantity)
			}
		}
	})
}
