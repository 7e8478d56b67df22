package plan

import "context"

// Repository persists plan rows. Every method joins the transaction carried
// by ctx when there is one.
type Repository interface {
	Create(ctx context.Context, plan *RentalPlan) error
	// GetByID returns nil, nil when the plan does not exist.
	GetByID(ctx context.Context, id string) (*RentalPlan, error)
	UpdateBaseFields(ctx context.Context, plan *RentalPlan) error
	// SoftDelete clears is_active in a single statement.
	SoftDelete(ctx context.Context, id string) error
	ListByMerchant(ctx context.Context, filter ListFilter) ([]*RentalPlan, int64, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
}

type ListFilter struct {
	MerchantID     string
	IncludeRetired bool
	Page           int
	PageSize       int
}

type ComponentRepository interface {
	ListByPlan(ctx context.Context, planID string) ([]PlanComponent, error)
	DeleteByPlan(ctx context.Context, planID string) error
	CreateBatch(ctx context.Context, rows []PlanComponent) error
}

type UpgradeRepository interface {
	ListByPlan(ctx context.Context, planID string) ([]PlanUpgrade, error)
	DeleteByPlan(ctx context.Context, planID string) error
	CreateBatch(ctx context.Context, rows []PlanUpgrade) error
}
