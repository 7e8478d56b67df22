package tag

import "context"

type Repository interface {
	Create(ctx context.Context, tag *Tag) error
	// GetByID returns nil, nil when the tag does not exist.
	GetByID(ctx context.Context, id string) (*Tag, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Tag, error)
	GetByCodes(ctx context.Context, codes []string) ([]*Tag, error)
	Update(ctx context.Context, tag *Tag) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*Tag, error)
	// ApplyUsageDelta adds delta to usage_count of every id in one statement
	// per call, without reading the current value.
	ApplyUsageDelta(ctx context.Context, ids []string, delta int) error
}

type ListFilter struct {
	CategoryID string
	ActiveOnly bool
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Delete(ctx context.Context, id string) error
	CountTags(ctx context.Context, categoryID string) (int64, error)
}

type PlanTagRepository interface {
	ListTagIDsByPlan(ctx context.Context, planID string) ([]string, error)
	ListByPlan(ctx context.Context, planID string) ([]PlanTag, error)
	DeleteByPlan(ctx context.Context, planID string) error
	CreateBatch(ctx context.Context, rows []PlanTag) error
	CountByTag(ctx context.Context, tagID string) (int64, error)
}
