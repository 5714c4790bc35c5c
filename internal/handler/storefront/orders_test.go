package storefront

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zyraa/storefront/internal/domain"
)

func TestOrdersHandler_List(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ledger := &mockOrderLedger{
		ListFunc: func() []domain.Order {
			return []domain.Order{
				{ID: "ORD-2", CreatedAt: base.Add(time.Minute), Status: domain.OrderStatusConfirmed},
				{ID: "ORD-1", CreatedAt: base, Status: domain.OrderStatusShipped},
			}
		},
	}
	h := NewOrdersHandler(ledger, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Orders []domain.Order `json:"orders"`
		Count  int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 2, body.Count)
	assert.Equal(t, "ORD-2", body.Orders[0].ID)
}

func TestOrdersHandler_List_Empty(t *testing.T) {
	h := NewOrdersHandler(&mockOrderLedger{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

func TestOrdersHandler_GetByID(t *testing.T) {
	ledger := &mockOrderLedger{
		FindByIDFunc: func(id string) (*domain.Order, error) {
			require.Equal(t, "ORD-1", id)
			return &domain.Order{ID: "ORD-1", Status: domain.OrderStatusConfirmed}, nil
		},
	}
	h := NewOrdersHandler(ledger, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/orders/ORD-1", nil)
	req.SetPathValue("id", "ORD-1")
	w := httptest.NewRecorder()
	h.GetByID(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"ORD-1"`)
}

func TestOrdersHandler_GetByID_NotFound(t *testing.T) {
	ledger := &mockOrderLedger{
		FindByIDFunc: func(id string) (*domain.Order, error) {
			return nil, domain.ErrOrderNotFound
		},
	}
	h := NewOrdersHandler(ledger, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/orders/ORD-missing", nil)
	req.SetPathValue("id", "ORD-missing")
	w := httptest.NewRecorder()
	h.GetByID(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"not_found"`)
}
