package promosvc

import (
	"context"
	"strings"
	"time"

	"github.com/kasikotas/order/internal/dal/interfaces/ipromorepo"
	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/promocode"
	"go.opentelemetry.io/otel"
)

// PromoCodeService manages the promo code ledger.
type PromoCodeService struct {
	repo ipromorepo.PostgresRepository
}

// option is a function that configures the PromoCodeService.
type option func(*PromoCodeService)

// MustNewPromoCodeService creates a new PromoCodeService.
func MustNewPromoCodeService(opts ...option) *PromoCodeService {
	s := &PromoCodeService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.repo == nil {
		panic("promosvc: promo code repository required")
	}

	return s
}

// WithPromoCodeRepository sets the promo code repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPromoCodeRepository(repo ipromorepo.PostgresRepository) option {
	return func(s *PromoCodeService) {
		s.repo = repo
	}
}

// Validate checks a code against an order amount without consuming a usage
// slot. The returned code carries the discount the caller would get.
func (s *PromoCodeService) Validate(ctx context.Context, code string, orderCents int64) (*promocode.PromoCode, error) {
	ctx, span := otel.Tracer("promosvc").Start(ctx, "Validate")
	defer span.End()

	promo, err := s.repo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}

	if err := promo.Validate(orderCents, time.Now()); err != nil {
		return nil, err
	}

	return promo, nil
}

// Create registers a new promo code.
func (s *PromoCodeService) Create(ctx context.Context, p promocode.PromoCode) (promocode.PromoCode, error) {
	ctx, span := otel.Tracer("promosvc").Start(ctx, "Create")
	defer span.End()

	p.Code = strings.TrimSpace(p.Code)
	if p.Code == "" {
		return promocode.PromoCode{}, apperr.New(apperr.KindValidation, "promo code must not be empty")
	}
	if _, err := promocode.ParseKind(string(p.Kind)); err != nil {
		return promocode.PromoCode{}, err
	}
	if p.DiscountValue <= 0 {
		return promocode.PromoCode{}, apperr.New(apperr.KindValidation, "discount value must be positive")
	}
	if p.Kind == promocode.KindPercentage && p.DiscountValue > 100 {
		return promocode.PromoCode{}, apperr.New(apperr.KindValidation, "percentage discount cannot exceed 100")
	}
	if p.MaxUsages <= 0 {
		return promocode.PromoCode{}, apperr.New(apperr.KindValidation, "max usages must be positive")
	}

	p.UsageCount = 0
	p.Version = 1

	return s.repo.Insert(ctx, p)
}

// List returns all promo codes.
func (s *PromoCodeService) List(ctx context.Context) ([]promocode.PromoCode, error) {
	return s.repo.List(ctx)
}

// Delete removes a promo code.
func (s *PromoCodeService) Delete(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("promosvc").Start(ctx, "Delete")
	defer span.End()

	return s.repo.Delete(ctx, id)
}
