package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCalculateDiscount(t *testing.T) {
	tests := []struct {
		name  string
		promo entity.Promotion
		total string
		want  string
	}{
		{"percentage of total", entity.Promotion{PromoType: entity.PromotionPercentage, Value: 10}, "100", "10"},
		{"percentage rounds to cents", entity.Promotion{PromoType: entity.PromotionPercentage, Value: 15}, "33.33", "5"},
		{"fixed amount", entity.Promotion{PromoType: entity.PromotionFixedAmount, Value: 7.5}, "40", "7.5"},
		{"fixed amount clamped to total", entity.Promotion{PromoType: entity.PromotionFixedAmount, Value: 50}, "20", "20"},
		{"negative fixed amount clamped to zero", entity.Promotion{PromoType: entity.PromotionFixedAmount, Value: -5}, "20", "0"},
		{"buy one get one halves the total", entity.Promotion{PromoType: entity.PromotionBuyOneGetOne}, "25", "12.5"},
		{"percentage above 100 clamped", entity.Promotion{PromoType: entity.PromotionPercentage, Value: 150}, "10", "10"},
		{"zero total", entity.Promotion{PromoType: entity.PromotionFixedAmount, Value: 5}, "0", "0"},
		{"unknown type", entity.Promotion{PromoType: "MYSTERY", Value: 5}, "10", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			got := CalculateDiscount(&tt.promo, total)

			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
			assert.False(t, got.IsNegative())
			assert.True(t, got.LessThanOrEqual(total))
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "WELCOME10", NormalizeCode("  welcome10 "))
	assert.Equal(t, "BOGO", NormalizeCode("BoGo"))
}

func TestPromotionService_ValidatePromotion(t *testing.T) {
	now := time.Now()
	active := &entity.Promotion{
		Base:       newBase(),
		Code:       "WELCOME10",
		PromoType:  entity.PromotionPercentage,
		Value:      10,
		StartDate:  now.Add(-time.Hour),
		ExpiryDate: now.Add(time.Hour),
		IsActive:   true,
	}
	expired := *active
	expired.ExpiryDate = now.Add(-time.Minute)

	tests := []struct {
		name      string
		code      string
		setup     func(m *mockPromotionRepo)
		wantErr   string
		wantDisc  float64
		wantFinal float64
	}{
		{
			name: "lookup is case-insensitive",
			code: "welcome10",
			setup: func(m *mockPromotionRepo) {
				m.On("FindByCode", mock.Anything, "WELCOME10").Return(active, nil)
			},
			wantDisc:  8,
			wantFinal: 72,
		},
		{
			name: "unknown code",
			code: "nope",
			setup: func(m *mockPromotionRepo) {
				m.On("FindByCode", mock.Anything, "NOPE").Return(nil, nil)
			},
			wantErr: "not found",
		},
		{
			name: "expired code",
			code: "WELCOME10",
			setup: func(m *mockPromotionRepo) {
				m.On("FindByCode", mock.Anything, "WELCOME10").Return(&expired, nil)
			},
			wantErr: "inactive or expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promoRepo := new(mockPromotionRepo)
			tt.setup(promoRepo)

			svc := NewPromotionService(&repository.Repository{Promotion: promoRepo}, zap.NewNop())
			quote, err := svc.ValidatePromotion(context.Background(), &request.ValidatePromotionRequest{
				Code:       tt.code,
				TotalPrice: 80,
			})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, quote.Valid)
			assert.InDelta(t, tt.wantDisc, quote.Discount, 0.001)
			assert.InDelta(t, tt.wantFinal, quote.FinalPrice, 0.001)
			promoRepo.AssertExpectations(t)
		})
	}
}
