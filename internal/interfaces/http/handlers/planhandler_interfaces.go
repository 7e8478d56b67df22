package handlers

import (
	"context"

	"github.com/kimono-rental/kimono/internal/application/plan/dto"
	"github.com/kimono-rental/kimono/internal/application/plan/usecases"
)

// Use case interfaces for PlanHandler

type createPlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreatePlanCommand) (*dto.PlanDTO, error)
}

type updatePlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdatePlanCommand) (*dto.PlanDTO, error)
}

type softDeletePlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.SoftDeletePlanCommand) error
}

type getPlanUseCase interface {
	ExecuteForMerchant(ctx context.Context, planID, merchantID string) (*dto.PlanDTO, error)
	ExecutePublic(ctx context.Context, planID string) (*dto.PlanDTO, error)
}

type listMerchantPlansUseCase interface {
	Execute(ctx context.Context, query usecases.ListMerchantPlansQuery) (*usecases.ListMerchantPlansResult, error)
}
