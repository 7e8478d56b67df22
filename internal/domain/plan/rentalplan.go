package plan

import (
	"fmt"
	"time"

	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/id"
)

type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "DRAFT"
	PlanStatusPublished PlanStatus = "PUBLISHED"
	PlanStatusArchived  PlanStatus = "ARCHIVED"
)

func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanStatusDraft, PlanStatusPublished, PlanStatusArchived:
		return true
	}
	return false
}

type PricingUnit string

const (
	PricingUnitPerPerson PricingUnit = "PER_PERSON"
	PricingUnitPerGroup  PricingUnit = "PER_GROUP"
	PricingUnitPerSet    PricingUnit = "PER_SET"
)

func (u PricingUnit) IsValid() bool {
	switch u {
	case PricingUnitPerPerson, PricingUnitPerGroup, PricingUnitPerSet:
		return true
	}
	return false
}

const maxNameLength = 200

// BaseFields are the merchant-editable scalar attributes of a plan. Prices are
// in the smallest currency unit (yen).
type BaseFields struct {
	Name           string
	Description    string
	Price          int64
	OriginalPrice  *int64
	DepositAmount  int64
	PricingUnit    PricingUnit
	UnitLabel      string
	MinQuantity    int
	MaxQuantity    int
	Duration       int
	ImageURL       string
	Images         []string
	StoreName      string
	Region         string
	ThemeID        *string
	AvailableFrom  *time.Time
	AvailableUntil *time.Time
	IsFeatured     bool
}

// validate returns one message per offending field.
func (b BaseFields) validate() map[string]string {
	fields := make(map[string]string)
	if b.Name == "" {
		fields["name"] = "name is required"
	} else if len([]rune(b.Name)) > maxNameLength {
		fields["name"] = fmt.Sprintf("name must be at most %d characters long", maxNameLength)
	}
	if b.Price < 0 {
		fields["price"] = "price must be greater than or equal to 0"
	}
	if b.OriginalPrice != nil && *b.OriginalPrice < 0 {
		fields["originalPrice"] = "originalPrice must be greater than or equal to 0"
	}
	if b.DepositAmount < 0 {
		fields["depositAmount"] = "depositAmount must be greater than or equal to 0"
	}
	if !b.PricingUnit.IsValid() {
		fields["pricingUnit"] = fmt.Sprintf("pricingUnit must be one of [%s %s %s]",
			PricingUnitPerPerson, PricingUnitPerGroup, PricingUnitPerSet)
	}
	if b.MinQuantity < 1 {
		fields["minQuantity"] = "minQuantity must be at least 1"
	}
	if b.MaxQuantity < b.MinQuantity {
		fields["maxQuantity"] = "maxQuantity must be greater than or equal to minQuantity"
	}
	if b.Duration < 1 {
		fields["duration"] = "duration must be at least 1"
	}
	if b.AvailableFrom != nil && b.AvailableUntil != nil && b.AvailableFrom.After(*b.AvailableUntil) {
		fields["availableUntil"] = "availableUntil must not be before availableFrom"
	}
	return fields
}

// RentalPlan is a sellable rental offering owned by exactly one merchant.
// Plans are never hard-deleted; retiring one clears isActive so historical
// bookings keep their reference.
type RentalPlan struct {
	id         string
	merchantID string
	createdBy  string
	base       BaseFields
	status     PlanStatus
	isActive   bool
	createdAt  time.Time
	updatedAt  time.Time
}

// NewRentalPlan creates an active draft plan. Zero-valued pricing unit and
// quantities fall back to per-person, 1..1.
func NewRentalPlan(merchantID, createdBy string, base BaseFields) (*RentalPlan, error) {
	if merchantID == "" {
		return nil, errors.NewValidationError("merchant id is required")
	}
	if base.PricingUnit == "" {
		base.PricingUnit = PricingUnitPerPerson
	}
	if base.MinQuantity == 0 {
		base.MinQuantity = 1
	}
	if base.MaxQuantity == 0 {
		base.MaxQuantity = base.MinQuantity
	}
	if base.Duration == 0 {
		base.Duration = 1
	}
	if fields := base.validate(); len(fields) > 0 {
		return nil, errors.NewFieldValidationError("invalid plan fields", fields)
	}

	now := time.Now()
	return &RentalPlan{
		id:         id.NewPlanID(),
		merchantID: merchantID,
		createdBy:  createdBy,
		base:       base,
		status:     PlanStatusDraft,
		isActive:   true,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructRentalPlan rebuilds a plan from persistence.
func ReconstructRentalPlan(
	planID, merchantID, createdBy string,
	base BaseFields,
	status PlanStatus,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*RentalPlan, error) {
	if planID == "" {
		return nil, fmt.Errorf("plan ID cannot be empty")
	}
	if merchantID == "" {
		return nil, fmt.Errorf("plan %s has no merchant", planID)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid plan status: %s", status)
	}

	return &RentalPlan{
		id:         planID,
		merchantID: merchantID,
		createdBy:  createdBy,
		base:       base,
		status:     status,
		isActive:   isActive,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (p *RentalPlan) ID() string           { return p.id }
func (p *RentalPlan) MerchantID() string   { return p.merchantID }
func (p *RentalPlan) CreatedBy() string    { return p.createdBy }
func (p *RentalPlan) Base() BaseFields     { return p.base }
func (p *RentalPlan) Name() string         { return p.base.Name }
func (p *RentalPlan) Status() PlanStatus   { return p.status }
func (p *RentalPlan) IsActive() bool       { return p.isActive }
func (p *RentalPlan) CreatedAt() time.Time { return p.createdAt }
func (p *RentalPlan) UpdatedAt() time.Time { return p.updatedAt }

// EnsureOwnedBy fails with Forbidden when merchantID does not own the plan.
func (p *RentalPlan) EnsureOwnedBy(merchantID string) error {
	if p.merchantID != merchantID {
		return errors.NewForbiddenError("plan belongs to another merchant")
	}
	return nil
}

// EnsureActive fails with PreconditionFailed once the plan is retired. A
// retired plan's tag rows no longer count toward tag usage, so its
// associations are frozen.
func (p *RentalPlan) EnsureActive() error {
	if !p.isActive {
		return errors.NewPreconditionFailedError("plan has been retired", p.id)
	}
	return nil
}

// ApplyPatch applies the supplied fields. Nothing changes unless the merged
// result is valid.
func (p *RentalPlan) ApplyPatch(patch BaseFieldsPatch) error {
	merged := patch.mergeInto(p.base)

	fields := merged.validate()
	if patch.Status != nil && !patch.Status.IsValid() {
		fields["status"] = fmt.Sprintf("status must be one of [%s %s %s]",
			PlanStatusDraft, PlanStatusPublished, PlanStatusArchived)
	}
	if len(fields) > 0 {
		return errors.NewFieldValidationError("invalid plan fields", fields)
	}

	p.base = merged
	if patch.Status != nil {
		p.status = *patch.Status
	}
	p.updatedAt = time.Now()
	return nil
}

// Retire soft-deletes the plan. Calling it twice is a no-op.
func (p *RentalPlan) Retire() {
	if !p.isActive {
		return
	}
	p.isActive = false
	p.updatedAt = time.Now()
}
