package usecases

import (
	"context"
	"time"

	"github.com/kimono-rental/kimono/internal/application/plan/dto"
	"github.com/kimono-rental/kimono/internal/application/plan/services"
	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/domain/tag"
)

// TransactionRunner is implemented by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	RunInTransactionWithTimeout(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error
}

type TagSyncer interface {
	Sync(ctx context.Context, planID string, desired []string, actorID string) (tag.Delta, error)
}

type ComponentSyncer interface {
	Sync(ctx context.Context, p *plan.RentalPlan, input services.ComponentInput) ([]plan.PlanComponent, error)
}

type UpgradeSyncer interface {
	Sync(ctx context.Context, p *plan.RentalPlan, inputs []plan.UpgradeInput) ([]plan.PlanUpgrade, error)
}

type PlanAssembler interface {
	Assemble(ctx context.Context, p *plan.RentalPlan) (*dto.PlanDTO, error)
}

// PlanCache stores serialized public plan views. Get returns nil, nil on a
// miss.
type PlanCache interface {
	Get(ctx context.Context, planID string) ([]byte, error)
	Set(ctx context.Context, planID string, payload []byte) error
	Invalidate(ctx context.Context, planID string) error
}

type PlanEventPublisher interface {
	Publish(ctx context.Context, event plan.Event) error
}
