package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kimono-rental/kimono/internal/domain/merchant"
	"github.com/kimono-rental/kimono/internal/shared/errors"
)

// verifyMerchantComponents fails with NotFound when an id is unknown or
// belongs to another merchant, so one tenant cannot probe another's catalog.
func verifyMerchantComponents(ctx context.Context, repo merchant.ComponentRepository, merchantID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	found, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load merchant components: %w", err)
	}

	owned := make(map[string]struct{}, len(found))
	for _, c := range found {
		if c.MerchantID == merchantID {
			owned[c.ID] = struct{}{}
		}
	}

	var missing []string
	for _, id := range ids {
		if _, ok := owned[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return errors.NewNotFoundError("merchant component not found", strings.Join(missing, ", "))
	}
	return nil
}
