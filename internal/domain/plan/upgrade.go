package plan

import (
	"fmt"
	"time"

	"github.com/kimono-rental/kimono/internal/shared/errors"
)

// PlanUpgrade offers a merchant component as a paid extra on a plan.
// PriceOverride is persisted exactly as supplied; see merchant.EffectivePrice.
type PlanUpgrade struct {
	PlanID              string
	MerchantComponentID string
	PriceOverride       *int64
	IsPopular           bool
	DisplayOrder        int
	CreatedAt           time.Time
}

type UpgradeInput struct {
	MerchantComponentID string
	PriceOverride       *int64
	IsPopular           *bool
	DisplayOrder        *int
}

// UpgradesFromInputs builds upgrade rows. An unset display order takes the
// entry's index.
func UpgradesFromInputs(planID string, inputs []UpgradeInput) ([]PlanUpgrade, error) {
	rows := make([]PlanUpgrade, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	now := time.Now()

	for i, in := range inputs {
		key := fmt.Sprintf("planUpgrades[%d]", i)
		if in.MerchantComponentID == "" {
			return nil, errors.NewFieldValidationError("invalid plan upgrades", map[string]string{
				key + ".merchantComponentId": "merchantComponentId is required",
			})
		}
		if in.PriceOverride != nil && *in.PriceOverride < 0 {
			return nil, errors.NewFieldValidationError("invalid plan upgrades", map[string]string{
				key + ".priceOverride": "priceOverride must be greater than or equal to 0",
			})
		}
		if _, dup := seen[in.MerchantComponentID]; dup {
			return nil, errors.NewFieldValidationError("invalid plan upgrades", map[string]string{
				key: "component is listed more than once",
			})
		}
		seen[in.MerchantComponentID] = struct{}{}

		order := i
		if in.DisplayOrder != nil {
			order = *in.DisplayOrder
		}
		popular := false
		if in.IsPopular != nil {
			popular = *in.IsPopular
		}

		rows = append(rows, PlanUpgrade{
			PlanID:              planID,
			MerchantComponentID: in.MerchantComponentID,
			PriceOverride:       in.PriceOverride,
			IsPopular:           popular,
			DisplayOrder:        order,
			CreatedAt:           now,
		})
	}
	return rows, nil
}
