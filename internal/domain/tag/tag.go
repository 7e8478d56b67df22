package tag

import (
	"fmt"
	"time"

	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/id"
)

// Category groups tags (e.g. "color", "style", "occasion").
type Category struct {
	ID        string
	Code      string
	Name      string
	Order     int
	IsActive  bool
	CreatedAt time.Time
}

func NewCategory(code, name string, order int) (*Category, error) {
	normalized := NormalizeCode(code)
	fields := make(map[string]string)
	if normalized == "" {
		fields["code"] = "code is required"
	}
	if name == "" {
		fields["name"] = "name is required"
	}
	if len(fields) > 0 {
		return nil, errors.NewFieldValidationError("invalid tag category", fields)
	}
	return &Category{
		ID:        id.NewTagCategoryID(),
		Code:      normalized,
		Name:      name,
		Order:     order,
		IsActive:  true,
		CreatedAt: time.Now(),
	}, nil
}

// Tag is a categorized label. UsageCount is maintained only through
// Repository.ApplyUsageDelta and equals the number of active plans carrying
// the tag.
type Tag struct {
	ID         string
	CategoryID string
	Code       string
	Name       string
	Icon       string
	Color      string
	Order      int
	IsActive   bool
	UsageCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewTag(categoryID, code, name string) (*Tag, error) {
	normalized := NormalizeCode(code)
	fields := make(map[string]string)
	if categoryID == "" {
		fields["categoryId"] = "categoryId is required"
	}
	if normalized == "" {
		fields["code"] = "code is required"
	}
	if name == "" {
		fields["name"] = "name is required"
	}
	if len(fields) > 0 {
		return nil, errors.NewFieldValidationError("invalid tag", fields)
	}

	now := time.Now()
	return &Tag{
		ID:         id.NewTagID(),
		CategoryID: categoryID,
		Code:       normalized,
		Name:       name,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// TagPatch holds the editable presentation fields of a tag. Code and category
// are fixed after creation.
type TagPatch struct {
	Name     *string
	Icon     *string
	Color    *string
	Order    *int
	IsActive *bool
}

func (t *Tag) Apply(p TagPatch) error {
	if p.Name != nil {
		if *p.Name == "" {
			return errors.NewFieldValidationError("invalid tag", map[string]string{"name": "name must not be empty"})
		}
		t.Name = *p.Name
	}
	if p.Icon != nil {
		t.Icon = *p.Icon
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	if p.Order != nil {
		t.Order = *p.Order
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
	t.UpdatedAt = time.Now()
	return nil
}

func (t *Tag) String() string {
	return fmt.Sprintf("%s(%s)", t.Code, t.ID)
}

// PlanTag attaches a tag to a plan. (PlanID, TagID) is unique.
type PlanTag struct {
	PlanID    string
	TagID     string
	AddedBy   string
	CreatedAt time.Time
}
