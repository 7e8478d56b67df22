package usecases

import (
	"context"
	"fmt"

	"github.com/kimono-rental/kimono/internal/application/plan/dto"
	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/shared/logger"
	"github.com/kimono-rental/kimono/internal/shared/utils"
)

type ListMerchantPlansQuery struct {
	MerchantID     string
	IncludeRetired bool
	Page           int
	PageSize       int
}

type ListMerchantPlansResult struct {
	Plans    []*dto.PlanSummaryDTO
	Total    int64
	Page     int
	PageSize int
}

type ListMerchantPlansUseCase struct {
	planRepo plan.Repository
	logger   logger.Interface
}

func NewListMerchantPlansUseCase(planRepo plan.Repository, logger logger.Interface) *ListMerchantPlansUseCase {
	return &ListMerchantPlansUseCase{planRepo: planRepo, logger: logger}
}

func (uc *ListMerchantPlansUseCase) Execute(ctx context.Context, query ListMerchantPlansQuery) (*ListMerchantPlansResult, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	plans, total, err := uc.planRepo.ListByMerchant(ctx, plan.ListFilter{
		MerchantID:     query.MerchantID,
		IncludeRetired: query.IncludeRetired,
		Page:           pagination.Page,
		PageSize:       pagination.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list merchant plans", "error", err, "merchant_id", query.MerchantID)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	return &ListMerchantPlansResult{
		Plans:    dto.ToPlanSummaryDTOs(plans),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
