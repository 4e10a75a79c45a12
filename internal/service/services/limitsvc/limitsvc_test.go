package limitsvc

import (
	"context"
	"testing"

	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/orderlimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLimitRepo struct {
	limit *orderlimit.OrderLimit
}

func (r *fakeLimitRepo) Get(ctx context.Context) (*orderlimit.OrderLimit, error) {
	if r.limit == nil {
		return nil, apperr.ErrLimitNotSet
	}
	l := *r.limit

	return &l, nil
}

func (r *fakeLimitRepo) Upsert(ctx context.Context, limit orderlimit.OrderLimit) (orderlimit.OrderLimit, error) {
	limit.ID = 1
	r.limit = &limit

	return limit, nil
}

func TestGet_NotSet(t *testing.T) {
	svc := MustNewOrderLimitService(WithOrderLimitRepository(&fakeLimitRepo{}))

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, apperr.ErrLimitNotSet)
}

func TestSet_ReplacesExisting(t *testing.T) {
	repo := &fakeLimitRepo{}
	svc := MustNewOrderLimitService(WithOrderLimitRepository(repo))

	limit, err := svc.Set(context.Background(), 50, orderlimit.ScopeTotalOrders)
	require.NoError(t, err)
	assert.Equal(t, int64(1), limit.ID)
	assert.Equal(t, 50, limit.LimitValue)

	limit, err = svc.Set(context.Background(), 20, orderlimit.ScopeUnitsPerDay)
	require.NoError(t, err)
	assert.Equal(t, 20, limit.LimitValue)
	assert.Equal(t, orderlimit.ScopeUnitsPerDay, limit.Scope)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, got.LimitValue)
}

func TestSet_ZeroClosesShop(t *testing.T) {
	svc := MustNewOrderLimitService(WithOrderLimitRepository(&fakeLimitRepo{}))

	limit, err := svc.Set(context.Background(), 0, orderlimit.ScopeTotalOrders)
	require.NoError(t, err)
	assert.Equal(t, 0, limit.LimitValue)
}

func TestSet_NegativeRejected(t *testing.T) {
	svc := MustNewOrderLimitService(WithOrderLimitRepository(&fakeLimitRepo{}))

	_, err := svc.Set(context.Background(), -1, orderlimit.ScopeTotalOrders)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestSet_UnknownScopeRejected(t *testing.T) {
	svc := MustNewOrderLimitService(WithOrderLimitRepository(&fakeLimitRepo{}))

	_, err := svc.Set(context.Background(), 5, "per_hour")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
