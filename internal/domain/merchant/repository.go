package merchant

import "context"

type Repository interface {
	Create(ctx context.Context, m *Merchant) error
	GetByID(ctx context.Context, id string) (*Merchant, error)
	// GetByOwnerUserID returns nil, nil when the user owns no merchant.
	GetByOwnerUserID(ctx context.Context, userID string) (*Merchant, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type ComponentRepository interface {
	Create(ctx context.Context, c *Component) error
	GetByIDs(ctx context.Context, ids []string) ([]*Component, error)
}

type TemplateRepository interface {
	Create(ctx context.Context, t *ComponentTemplate) error
	GetByIDs(ctx context.Context, ids []string) ([]*ComponentTemplate, error)
}
