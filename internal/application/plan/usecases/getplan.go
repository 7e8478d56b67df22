package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kimono-rental/kimono/internal/application/plan/dto"
	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

type GetPlanUseCase struct {
	planRepo  plan.Repository
	assembler PlanAssembler
	cache     PlanCache
	logger    logger.Interface
}

func NewGetPlanUseCase(
	planRepo plan.Repository,
	assembler PlanAssembler,
	cache PlanCache,
	logger logger.Interface,
) *GetPlanUseCase {
	return &GetPlanUseCase{
		planRepo:  planRepo,
		assembler: assembler,
		cache:     cache,
		logger:    logger,
	}
}

// ExecuteForMerchant returns one of the merchant's own plans, retired or
// not. It never reads the cache.
func (uc *GetPlanUseCase) ExecuteForMerchant(ctx context.Context, planID, merchantID string) (*dto.PlanDTO, error) {
	p, err := loadOwnedPlan(ctx, uc.planRepo, uc.logger, planID, merchantID)
	if err != nil {
		return nil, err
	}
	return uc.assembler.Assemble(ctx, p)
}

// ExecutePublic returns an active, published plan through the cache.
// Retired and unpublished plans are reported as not found.
func (uc *GetPlanUseCase) ExecutePublic(ctx context.Context, planID string) (*dto.PlanDTO, error) {
	if cached := uc.fromCache(ctx, planID); cached != nil {
		return cached, nil
	}

	p, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", planID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil || !p.IsActive() || p.Status() != plan.PlanStatusPublished {
		return nil, errors.NewNotFoundError("plan not found", planID)
	}

	out, err := uc.assembler.Assemble(ctx, p)
	if err != nil {
		uc.logger.Errorw("failed to assemble plan", "error", err, "plan_id", planID)
		return nil, err
	}

	uc.toCache(ctx, out)
	return out, nil
}

func (uc *GetPlanUseCase) fromCache(ctx context.Context, planID string) *dto.PlanDTO {
	if uc.cache == nil {
		return nil
	}
	payload, err := uc.cache.Get(ctx, planID)
	if err != nil {
		uc.logger.Warnw("plan cache read failed", "error", err, "plan_id", planID)
		return nil
	}
	if payload == nil {
		return nil
	}
	var out dto.PlanDTO
	if err := json.Unmarshal(payload, &out); err != nil {
		uc.logger.Warnw("discarding undecodable cached plan", "error", err, "plan_id", planID)
		return nil
	}
	return &out
}

func (uc *GetPlanUseCase) toCache(ctx context.Context, out *dto.PlanDTO) {
	if uc.cache == nil {
		return
	}
	payload, err := json.Marshal(out)
	if err != nil {
		uc.logger.Warnw("failed to encode plan for cache", "error", err, "plan_id", out.ID)
		return
	}
	if err := uc.cache.Set(ctx, out.ID, payload); err != nil {
		uc.logger.Warnw("plan cache write failed", "error", err, "plan_id", out.ID)
	}
}
