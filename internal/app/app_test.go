package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	jwtsvc "hotelbooking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

type client struct {
	t      *testing.T
	router http.Handler
}

func (c client) do(method, path, token string, body any) (int, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestBookingFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := database.NewInMemory()
	require.NoError(t, err)

	merchant := &domain.User{Email: "owner@example.com", Role: domain.RoleMerchant}
	guest := &domain.User{Email: "guest@example.com", Role: domain.RoleGuest}
	require.NoError(t, db.Create(merchant).Error)
	require.NoError(t, db.Create(guest).Error)

	hotel := &domain.Hotel{MerchantID: merchant.ID, Name: "Riverside Inn", City: "Almaty", StarRating: 4, Score: 4.6, Status: domain.HotelPublished}
	require.NoError(t, db.Create(hotel).Error)
	room := &domain.Room{HotelID: hotel.ID, Name: "Deluxe", RoomType: domain.RoomDouble, Price: decimal.NewFromInt(90), OriginalPrice: decimal.NewFromInt(110)}
	require.NoError(t, db.Create(room).Error)

	cfg := &config.Config{RequestTimeout: 5 * time.Second}
	j := jwtsvc.New("test-secret", time.Hour)
	merchantToken, err := j.GenerateToken(merchant.ID, string(domain.RoleMerchant))
	require.NoError(t, err)
	guestToken, err := j.GenerateToken(guest.ID, string(domain.RoleGuest))
	require.NoError(t, err)

	c := client{t: t, router: NewRouter(cfg, db, j)}

	// guests cannot touch inventory
	code, env := c.do(http.MethodPost, "/api/v1/merchant/inventory/add", guestToken, map[string]any{})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	code, _ = c.do(http.MethodPost, "/api/v1/merchant/inventory/add", merchantToken, map[string]any{
		"hotel_id": hotel.ID, "room_id": room.ID,
		"start_date": "2025-07-01", "end_date": "2025-07-04",
		"price": "95.00", "stock": 4,
	})
	require.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodPost, "/api/v1/merchant/inventory/clear", merchantToken, map[string]any{
		"hotel_id": hotel.ID, "room_id": room.ID,
		"start_date": "2025-07-03", "end_date": "2025-07-04",
	})
	require.Equal(t, http.StatusOK, code)

	var found struct {
		Hotels []struct {
			HotelID   int64  `json:"hotel_id"`
			MinPrice  string `json:"min_price"`
			LeftStock int    `json:"left_stock"`
		} `json:"hotels"`
	}
	code, env = c.do(http.MethodGet, "/api/v1/hotels/search?city=Almaty&check_in=2025-07-01&check_out=2025-07-03", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &found))
	require.Len(t, found.Hotels, 1)
	assert.Equal(t, hotel.ID, found.Hotels[0].HotelID)
	assert.Equal(t, 4, found.Hotels[0].LeftStock)

	code, env = c.do(http.MethodGet, "/api/v1/hotels/search?city=Almaty&check_in=2025-07-02&check_out=2025-07-04", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &found))
	assert.Empty(t, found.Hotels, "07-03 was cleared")

	code, env = c.do(http.MethodGet, fmt.Sprintf("/api/v1/hotels/%d?check_in=2025-07-01&check_out=2025-07-03", hotel.ID), "", nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodPost, "/api/v1/orders", "", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = c.do(http.MethodPost, "/api/v1/orders", guestToken, map[string]any{
		"room_id": room.ID, "check_in": "2025-07-01", "check_out": "2025-07-03", "room_count": 2,
	})
	require.Equal(t, http.StatusCreated, code)
	var created struct {
		OrderID    string `json:"order_id"`
		TotalPrice string `json:"total_price"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, decimal.RequireFromString(created.TotalPrice).Equal(decimal.NewFromInt(380)))

	code, _ = c.do(http.MethodPost, "/api/v1/orders/"+created.OrderID+"/pay", guestToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = c.do(http.MethodPost, "/api/v1/merchant/orders/"+created.OrderID+"/check-in", merchantToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = c.do(http.MethodGet, "/api/v1/orders", guestToken, nil)
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Orders []struct {
			Status string `json:"status"`
		} `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Orders, 1)
	assert.Equal(t, "checked_in", list.Orders[0].Status)
}

func TestOnboardingModerationAndReviews(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := database.NewInMemory()
	require.NoError(t, err)

	j := jwtsvc.New("test-secret", time.Hour)
	token := func(id int64, role domain.UserRole) string {
		tok, err := j.GenerateToken(id, string(role))
		require.NoError(t, err)
		return tok
	}
	adminToken, merchantToken, guestToken := token(1, domain.RoleAdmin), token(2, domain.RoleMerchant), token(3, domain.RoleGuest)

	c := client{t: t, router: NewRouter(&config.Config{RequestTimeout: 5 * time.Second}, db, j)}

	code, env := c.do(http.MethodPost, "/api/v1/merchant/hotels", merchantToken, map[string]any{
		"name": "Steppe Grand", "city": "Astana", "address": "5 Kabanbay", "star_rating": 5,
		"media_urls": []string{"/cover.jpg"},
	})
	require.Equal(t, http.StatusCreated, code)
	var hotel struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &hotel))
	assert.Equal(t, "pending", hotel.Status)

	code, env = c.do(http.MethodPost, fmt.Sprintf("/api/v1/merchant/hotels/%d/rooms", hotel.ID), merchantToken, map[string]any{
		"name": "Suite", "room_type": "suite", "price": "200", "cancellable": true,
	})
	require.Equal(t, http.StatusCreated, code)
	var room struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &room))

	code, _ = c.do(http.MethodPost, "/api/v1/merchant/inventory/add", merchantToken, map[string]any{
		"hotel_id": hotel.ID, "room_id": room.ID,
		"start_date": "2025-09-01", "end_date": "2025-09-03",
		"price": "210.00", "stock": 2,
	})
	require.Equal(t, http.StatusOK, code)

	search := "/api/v1/hotels/search?city=Astana&check_in=2025-09-01&check_out=2025-09-03"
	var found struct {
		Hotels []struct {
			HotelID int64 `json:"hotel_id"`
		} `json:"hotels"`
	}
	code, env = c.do(http.MethodGet, search, "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &found))
	assert.Empty(t, found.Hotels, "pending hotels are not searchable")

	code, _ = c.do(http.MethodPost, fmt.Sprintf("/api/v1/admin/hotels/%d/approve", hotel.ID), merchantToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = c.do(http.MethodGet, "/api/v1/admin/hotels/pending", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"total":1`)

	code, _ = c.do(http.MethodPost, fmt.Sprintf("/api/v1/admin/hotels/%d/approve", hotel.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = c.do(http.MethodGet, search, "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &found))
	require.Len(t, found.Hotels, 1)

	code, env = c.do(http.MethodPost, "/api/v1/orders", guestToken, map[string]any{
		"room_id": room.ID, "check_in": "2025-09-01", "check_out": "2025-09-03",
	})
	require.Equal(t, http.StatusCreated, code)
	var order struct {
		OrderID string `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &order))

	reviewBody := map[string]any{"hotel_id": hotel.ID, "rating": 5, "content": "Spacious, quiet and clean"}
	code, env = c.do(http.MethodPost, "/api/v1/reviews", guestToken, reviewBody)
	assert.Equal(t, http.StatusForbidden, code, "no completed stay yet")

	for _, step := range []struct{ path, tok string }{
		{"/api/v1/orders/" + order.OrderID + "/pay", guestToken},
		{"/api/v1/merchant/orders/" + order.OrderID + "/check-in", merchantToken},
		{"/api/v1/merchant/orders/" + order.OrderID + "/complete", merchantToken},
	} {
		code, _ = c.do(http.MethodPost, step.path, step.tok, nil)
		require.Equal(t, http.StatusOK, code, step.path)
	}

	code, env = c.do(http.MethodPost, "/api/v1/reviews", guestToken, reviewBody)
	require.Equal(t, http.StatusCreated, code)
	var rv struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rv))

	var detail struct {
		TopKeywords []struct {
			Word string `json:"word"`
		} `json:"top_keywords"`
	}
	code, env = c.do(http.MethodGet, fmt.Sprintf("/api/v1/hotels/%d", hotel.ID), "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.NotEmpty(t, detail.TopKeywords)

	code, _ = c.do(http.MethodPatch, fmt.Sprintf("/api/v1/admin/reviews/%d/visibility", rv.ID), adminToken, map[string]any{"hidden": true})
	require.Equal(t, http.StatusOK, code)

	var listed struct {
		Reviews []json.RawMessage `json:"reviews"`
	}
	code, env = c.do(http.MethodGet, fmt.Sprintf("/api/v1/hotels/%d/reviews", hotel.ID), "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	assert.Empty(t, listed.Reviews)

	code, _ = c.do(http.MethodDelete, fmt.Sprintf("/api/v1/merchant/hotels/%d/rooms/%d", hotel.ID, room.ID), merchantToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = c.do(http.MethodGet, search, "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &found))
	assert.Empty(t, found.Hotels, "deleted room took its inventory with it")
}
