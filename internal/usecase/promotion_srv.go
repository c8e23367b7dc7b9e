package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PromotionService interface {
	// Public
	GetActivePromotions(ctx context.Context) ([]response.PromotionResponse, error)
	ValidatePromotion(ctx context.Context, req *request.ValidatePromotionRequest) (*response.PromotionQuoteResponse, error)

	// Admin
	GetAllPromotions(ctx context.Context) ([]response.PromotionResponse, error)
	GetPromotionByID(ctx context.Context, id string) (*response.PromotionResponse, error)
	CreatePromotion(ctx context.Context, req *request.PromotionRequest) (*response.PromotionResponse, error)
	UpdatePromotion(ctx context.Context, id string, req *request.PromotionUpdateRequest) (*response.PromotionResponse, error)
	DeletePromotion(ctx context.Context, id string) error
}

type promotionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPromotionService(repo *repository.Repository, log *zap.Logger) PromotionService {
	return &promotionService{
		repo: repo,
		log:  log.With(zap.String("service", "promotion")),
	}
}

var hundred = decimal.NewFromInt(100)

// CalculateDiscount returns the discount a promotion grants on total,
// rounded to cents and clamped to [0, total].
func CalculateDiscount(promo *entity.Promotion, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch promo.PromoType {
	case entity.PromotionPercentage:
		discount = total.Mul(decimal.NewFromFloat(promo.Value)).Div(hundred)
	case entity.PromotionFixedAmount:
		discount = decimal.NewFromFloat(promo.Value)
	case entity.PromotionBuyOneGetOne:
		discount = total.Div(decimal.NewFromInt(2))
	default:
		return decimal.Zero
	}

	discount = discount.Round(2)
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(total) {
		return total
	}
	return discount
}

// NormalizeCode upper-cases a promotion code; codes are stored upper-case.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// findUsablePromotion looks a code up and checks it is active and inside its window.
func findUsablePromotion(ctx context.Context, repo *repository.Repository, code string, now time.Time) (*entity.Promotion, error) {
	promo, err := repo.Promotion.FindByCode(ctx, NormalizeCode(code))
	if err != nil {
		return nil, fmt.Errorf("find promotion: %w", err)
	}
	if promo == nil {
		return nil, fmt.Errorf("promotion code %s not found", NormalizeCode(code))
	}
	if !promo.Usable(now) {
		return nil, fmt.Errorf("invalid promotion code: %s is inactive or expired", promo.Code)
	}
	return promo, nil
}

func (s *promotionService) GetActivePromotions(ctx context.Context) ([]response.PromotionResponse, error) {
	promos, err := s.repo.Promotion.FindUsable(ctx, time.Now())
	if err != nil {
		s.log.Error("Failed to get active promotions", zap.Error(err))
		return nil, fmt.Errorf("get promotions: %w", err)
	}
	return response.PromotionsToResponse(promos), nil
}

func (s *promotionService) ValidatePromotion(ctx context.Context, req *request.ValidatePromotionRequest) (*response.PromotionQuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	promo, err := findUsablePromotion(ctx, s.repo, req.Code, time.Now())
	if err != nil {
		return nil, err
	}

	total := decimal.NewFromFloat(req.TotalPrice).Round(2)
	discount := CalculateDiscount(promo, total)

	return &response.PromotionQuoteResponse{
		Valid:      true,
		Discount:   discount.InexactFloat64(),
		FinalPrice: total.Sub(discount).InexactFloat64(),
		Promotion:  response.PromotionToResponse(promo),
	}, nil
}

func (s *promotionService) GetAllPromotions(ctx context.Context) ([]response.PromotionResponse, error) {
	promos, err := s.repo.Promotion.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get promotions: %w", err)
	}
	return response.PromotionsToResponse(promos), nil
}

func (s *promotionService) find(ctx context.Context, id string) (*entity.Promotion, error) {
	promoID, err := parseID("promotion", id)
	if err != nil {
		return nil, err
	}

	promo, err := s.repo.Promotion.FindByID(ctx, promoID)
	if err != nil {
		return nil, fmt.Errorf("get promotion: %w", err)
	}
	if promo == nil {
		return nil, fmt.Errorf("promotion %s not found", id)
	}
	return promo, nil
}

func (s *promotionService) GetPromotionByID(ctx context.Context, id string) (*response.PromotionResponse, error) {
	promo, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.PromotionToResponse(promo)
	return &resp, nil
}

func checkPromotion(promo *entity.Promotion) error {
	if promo.ExpiryDate.Before(promo.StartDate) {
		return fmt.Errorf("validation failed: expiry_date must not be before start_date")
	}
	if promo.PromoType == entity.PromotionPercentage && promo.Value > 100 {
		return fmt.Errorf("validation failed: percentage value must be at most 100")
	}
	return nil
}

func (s *promotionService) CreatePromotion(ctx context.Context, req *request.PromotionRequest) (*response.PromotionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create promotion validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	expiry, err := time.Parse(time.RFC3339, req.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("invalid expiry_date: %w", err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	promo := &entity.Promotion{
		Base:        newBase(),
		Code:        NormalizeCode(req.Code),
		Title:       req.Title,
		Description: req.Description,
		PromoType:   entity.PromotionType(req.PromoType),
		Value:       req.Value,
		StartDate:   start,
		ExpiryDate:  expiry,
		IsActive:    isActive,
	}
	if err := checkPromotion(promo); err != nil {
		return nil, err
	}

	if err := s.repo.Promotion.Create(ctx, promo); err != nil {
		if database.IsUniqueViolation(err, repository.PromotionCodeConstraint) {
			return nil, fmt.Errorf("promotion code %s already exists", promo.Code)
		}
		return nil, fmt.Errorf("create promotion: %w", err)
	}

	s.log.Info("Promotion created", zap.String("promotion_id", promo.ID.String()), zap.String("code", promo.Code))

	resp := response.PromotionToResponse(promo)
	return &resp, nil
}

func (s *promotionService) UpdatePromotion(ctx context.Context, id string, req *request.PromotionUpdateRequest) (*response.PromotionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	promo, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		promo.Code = NormalizeCode(*req.Code)
	}
	if req.Title != nil {
		promo.Title = *req.Title
	}
	if req.Description != nil {
		promo.Description = req.Description
	}
	if req.PromoType != nil {
		promo.PromoType = entity.PromotionType(*req.PromoType)
	}
	if req.Value != nil {
		promo.Value = *req.Value
	}
	if req.StartDate != nil {
		if promo.StartDate, err = time.Parse(time.RFC3339, *req.StartDate); err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
	}
	if req.ExpiryDate != nil {
		if promo.ExpiryDate, err = time.Parse(time.RFC3339, *req.ExpiryDate); err != nil {
			return nil, fmt.Errorf("invalid expiry_date: %w", err)
		}
	}
	if req.IsActive != nil {
		promo.IsActive = *req.IsActive
	}
	if err := checkPromotion(promo); err != nil {
		return nil, err
	}
	promo.UpdatedAt = time.Now()

	if err := s.repo.Promotion.Update(ctx, promo); err != nil {
		if database.IsUniqueViolation(err, repository.PromotionCodeConstraint) {
			return nil, fmt.Errorf("promotion code %s already exists", promo.Code)
		}
		return nil, fmt.Errorf("update promotion: %w", err)
	}

	resp := response.PromotionToResponse(promo)
	return &resp, nil
}

func (s *promotionService) DeletePromotion(ctx context.Context, id string) error {
	promo, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Promotion.Delete(ctx, promo.ID); err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("promotion %s cannot be deleted: already used by receipts, deactivate it instead", promo.Code)
		}
		return fmt.Errorf("delete promotion: %w", err)
	}

	s.log.Info("Promotion deleted", zap.String("promotion_id", id), zap.String("code", promo.Code))
	return nil
}
