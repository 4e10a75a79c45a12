package updatestatus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	updatedID     int64
	updatedStatus order.Status
	deletedID     int64
	err           error
}

func (s *stubService) UpdateOrderStatus(ctx context.Context, id int64, next order.Status) (order.Order, error) {
	s.updatedID = id
	s.updatedStatus = next

	return order.Order{ID: id, Status: next}, s.err
}

func (s *stubService) DeleteOrder(ctx context.Context, id int64) error {
	s.deletedID = id

	return s.err
}

func newRouter(svc *stubService) *chi.Mux {
	r := chi.NewRouter()
	r.Put("/orders/{id}/status", func(w http.ResponseWriter, req *http.Request) {
		UpdateStatus(w, req, svc)
	})
	r.Delete("/orders/{id}", func(w http.ResponseWriter, req *http.Request) {
		DeleteOrder(w, req, svc)
	})

	return r
}

func TestUpdateStatus_OK(t *testing.T) {
	svc := &stubService{}
	router := newRouter(svc)

	req := httptest.NewRequest("PUT", "/orders/7/status", strings.NewReader(`{"status": "PROCESSING"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, int64(7), svc.updatedID)
	assert.Equal(t, order.StatusProcessing, svc.updatedStatus)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	router := newRouter(&stubService{})

	req := httptest.NewRequest("PUT", "/orders/7/status", strings.NewReader(`{"status": "SHIPPED"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, 400, rec.Code)
}

func TestUpdateStatus_IllegalTransitionRejected(t *testing.T) {
	svc := &stubService{err: apperr.New(apperr.KindValidation, "cannot transition order from PENDING to DELIVERED")}
	router := newRouter(svc)

	req := httptest.NewRequest("PUT", "/orders/7/status", strings.NewReader(`{"status": "DELIVERED"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, 400, rec.Code)
}

func TestUpdateStatus_BadID(t *testing.T) {
	router := newRouter(&stubService{})

	req := httptest.NewRequest("PUT", "/orders/abc/status", strings.NewReader(`{"status": "PROCESSING"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, 400, rec.Code)
}

func TestDeleteOrder_NoContent(t *testing.T) {
	svc := &stubService{}
	router := newRouter(svc)

	req := httptest.NewRequest("DELETE", "/orders/9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, 204, rec.Code)
	assert.Equal(t, int64(9), svc.deletedID)
}

func TestDeleteOrder_NotFound(t *testing.T) {
	svc := &stubService{err: apperr.ErrOrderNotFound}
	router := newRouter(svc)

	req := httptest.NewRequest("DELETE", "/orders/9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, 404, rec.Code)
}
