package orderlimithandler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/orderlimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	limit    *orderlimit.OrderLimit
	setValue int
	setScope orderlimit.Scope
	err      error
}

func (s *stubService) Get(ctx context.Context) (*orderlimit.OrderLimit, error) {
	return s.limit, s.err
}

func (s *stubService) Set(ctx context.Context, value int, scope orderlimit.Scope) (orderlimit.OrderLimit, error) {
	s.setValue = value
	s.setScope = scope

	return orderlimit.OrderLimit{ID: 1, LimitValue: value, Scope: scope}, s.err
}

func TestGetLimit(t *testing.T) {
	svc := &stubService{limit: &orderlimit.OrderLimit{ID: 1, LimitValue: 40, Scope: orderlimit.ScopeUnitsPerDay}}

	rec := httptest.NewRecorder()
	GetLimit(rec, httptest.NewRequest("GET", "/api/admin/order-limit", nil), svc)

	require.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"id": 1, "limit": 40, "scope": "units_per_day"}`, rec.Body.String())
}

func TestGetLimit_NotSet(t *testing.T) {
	svc := &stubService{err: apperr.ErrLimitNotSet}

	rec := httptest.NewRecorder()
	GetLimit(rec, httptest.NewRequest("GET", "/api/admin/order-limit", nil), svc)

	assert.Equal(t, 404, rec.Code)
}

func TestSetLimit(t *testing.T) {
	svc := &stubService{}

	req := httptest.NewRequest("PUT", "/api/admin/order-limit", strings.NewReader(`{"limit": 25, "scope": "total_orders"}`))
	rec := httptest.NewRecorder()
	SetLimit(rec, req, svc)

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, 25, svc.setValue)
	assert.Equal(t, orderlimit.ScopeTotalOrders, svc.setScope)
}

func TestSetLimit_ZeroClosesShop(t *testing.T) {
	svc := &stubService{}

	req := httptest.NewRequest("PUT", "/api/admin/order-limit", strings.NewReader(`{"limit": 0, "scope": "total_orders"}`))
	rec := httptest.NewRecorder()
	SetLimit(rec, req, svc)

	assert.Equal(t, 200, rec.Code)
}

func TestSetLimit_UnknownScope(t *testing.T) {
	req := httptest.NewRequest("PUT", "/api/admin/order-limit", strings.NewReader(`{"limit": 25, "scope": "per_hour"}`))
	rec := httptest.NewRecorder()
	SetLimit(rec, req, &stubService{})

	assert.Equal(t, 400, rec.Code)
}

func TestSetLimit_NegativeRejected(t *testing.T) {
	req := httptest.NewRequest("PUT", "/api/admin/order-limit", strings.NewReader(`{"limit": -3, "scope": "total_orders"}`))
	rec := httptest.NewRecorder()
	SetLimit(rec, req, &stubService{})

	assert.Equal(t, 400, rec.Code)
}
