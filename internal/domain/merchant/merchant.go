package merchant

import (
	"time"

	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/id"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusSuspended Status = "SUSPENDED"
)

// Merchant is a rental shop. Only approved merchants may manage plans.
type Merchant struct {
	ID          string
	OwnerUserID string
	Name        string
	Status      Status
	CreatedAt   time.Time
}

func NewMerchant(ownerUserID, name string) (*Merchant, error) {
	if ownerUserID == "" || name == "" {
		return nil, errors.NewValidationError("merchant owner and name are required")
	}
	return &Merchant{
		ID:          id.NewMerchantID(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}, nil
}

func (m *Merchant) IsApproved() bool {
	return m.Status == StatusApproved
}

type ComponentType string

const (
	ComponentTypeOutfit ComponentType = "OUTFIT"
	ComponentTypeAddon  ComponentType = "ADDON"
)

// ComponentTemplate is a platform-defined service element with a suggested
// base price.
type ComponentTemplate struct {
	ID        string
	Code      string
	Name      string
	Type      ComponentType
	BasePrice int64
}

// Component is a merchant's instance of a template. Price overrides the
// template's base price when set.
type Component struct {
	ID         string
	MerchantID string
	TemplateID string
	CustomName string
	Price      *int64
	IsEnabled  bool
}

// EffectivePrice resolves the price a customer pays for an upgrade:
// the plan-level override, else the merchant's price, else the template's
// base price.
func EffectivePrice(priceOverride, merchantPrice *int64, basePrice int64) int64 {
	if priceOverride != nil {
		return *priceOverride
	}
	if merchantPrice != nil {
		return *merchantPrice
	}
	return basePrice
}
