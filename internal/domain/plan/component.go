package plan

import (
	"fmt"
	"time"

	"github.com/kimono-rental/kimono/internal/shared/errors"
)

type LabelPosition string

const (
	LabelPositionLeft   LabelPosition = "left"
	LabelPositionRight  LabelPosition = "right"
	LabelPositionTop    LabelPosition = "top"
	LabelPositionBottom LabelPosition = "bottom"

	DefaultLabelPosition = LabelPositionRight
)

func (l LabelPosition) IsValid() bool {
	switch l {
	case LabelPositionLeft, LabelPositionRight, LabelPositionTop, LabelPositionBottom:
		return true
	}
	return false
}

// PlanComponent links a plan to an included merchant component together with
// its hotspot on the plan's outfit image.
type PlanComponent struct {
	PlanID              string
	MerchantComponentID string
	HotmapX             *float64
	HotmapY             *float64
	LabelPosition       LabelPosition
	LabelOffsetX        *float64
	LabelOffsetY        *float64
	HotmapOrder         int
	CreatedAt           time.Time
}

// ComponentPlacement is the detailed input form of an included component.
type ComponentPlacement struct {
	MerchantComponentID string
	HotmapX             *float64
	HotmapY             *float64
	LabelPosition       *LabelPosition
	LabelOffsetX        *float64
	LabelOffsetY        *float64
	HotmapOrder         *int
}

// ComponentsFromPlacements builds the rows for the detailed form. Position
// defaults to right, order to 0, unset offsets stay nil.
func ComponentsFromPlacements(planID string, placements []ComponentPlacement) ([]PlanComponent, error) {
	rows := make([]PlanComponent, 0, len(placements))
	seen := make(map[string]struct{}, len(placements))
	now := time.Now()

	for i, p := range placements {
		if p.MerchantComponentID == "" {
			return nil, errors.NewFieldValidationError("invalid plan components", map[string]string{
				fmt.Sprintf("planComponents[%d].merchantComponentId", i): "merchantComponentId is required",
			})
		}
		if _, dup := seen[p.MerchantComponentID]; dup {
			return nil, duplicateComponentError("planComponents", i)
		}
		seen[p.MerchantComponentID] = struct{}{}

		position := DefaultLabelPosition
		if p.LabelPosition != nil {
			if !p.LabelPosition.IsValid() {
				return nil, errors.NewFieldValidationError("invalid plan components", map[string]string{
					fmt.Sprintf("planComponents[%d].hotmapLabelPosition", i): "hotmapLabelPosition must be one of [left right top bottom]",
				})
			}
			position = *p.LabelPosition
		}
		order := 0
		if p.HotmapOrder != nil {
			order = *p.HotmapOrder
		}

		rows = append(rows, PlanComponent{
			PlanID:              planID,
			MerchantComponentID: p.MerchantComponentID,
			HotmapX:             p.HotmapX,
			HotmapY:             p.HotmapY,
			LabelPosition:       position,
			LabelOffsetX:        p.LabelOffsetX,
			LabelOffsetY:        p.LabelOffsetY,
			HotmapOrder:         order,
			CreatedAt:           now,
		})
	}
	return rows, nil
}

// ComponentsFromIDs builds the rows for the simple form; order is the index.
func ComponentsFromIDs(planID string, ids []string) ([]PlanComponent, error) {
	rows := make([]PlanComponent, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	now := time.Now()

	for i, componentID := range ids {
		if componentID == "" {
			return nil, errors.NewFieldValidationError("invalid plan components", map[string]string{
				fmt.Sprintf("merchantComponentIds[%d]", i): "merchantComponentIds must not contain empty ids",
			})
		}
		if _, dup := seen[componentID]; dup {
			return nil, duplicateComponentError("merchantComponentIds", i)
		}
		seen[componentID] = struct{}{}

		rows = append(rows, PlanComponent{
			PlanID:              planID,
			MerchantComponentID: componentID,
			LabelPosition:       DefaultLabelPosition,
			HotmapOrder:         i,
			CreatedAt:           now,
		})
	}
	return rows, nil
}

func duplicateComponentError(field string, index int) error {
	return errors.NewFieldValidationError("invalid plan components", map[string]string{
		fmt.Sprintf("%s[%d]", field, index): "component is listed more than once",
	})
}
