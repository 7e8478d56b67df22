package merchant

import (
	"context"
	"fmt"

	"github.com/kimono-rental/kimono/internal/domain/merchant"
	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

// Resolver maps an authenticated user to the merchant they operate.
type Resolver struct {
	merchantRepo merchant.Repository
	logger       logger.Interface
}

func NewResolver(merchantRepo merchant.Repository, logger logger.Interface) *Resolver {
	return &Resolver{merchantRepo: merchantRepo, logger: logger}
}

// ResolveApproved returns the user's merchant. A user without a merchant, or
// whose merchant is not approved, is Forbidden.
func (r *Resolver) ResolveApproved(ctx context.Context, userID string) (*merchant.Merchant, error) {
	m, err := r.merchantRepo.GetByOwnerUserID(ctx, userID)
	if err != nil {
		r.logger.Errorw("failed to resolve merchant", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to resolve merchant: %w", err)
	}
	if m == nil {
		return nil, errors.NewForbiddenError("merchant account required")
	}
	if !m.IsApproved() {
		return nil, errors.NewForbiddenError("merchant is not approved", string(m.Status))
	}
	return m, nil
}
