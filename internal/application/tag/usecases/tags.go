package usecases

import (
	"context"
	"fmt"

	"github.com/kimono-rental/kimono/internal/application/tag/dto"
	"github.com/kimono-rental/kimono/internal/domain/tag"
	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

type CreateTagCommand struct {
	CategoryID string
	Code       string
	Name       string
	Icon       string
	Color      string
	Order      int
}

type CreateTagUseCase struct {
	tagRepo      tag.Repository
	categoryRepo tag.CategoryRepository
	logger       logger.Interface
}

func NewCreateTagUseCase(tagRepo tag.Repository, categoryRepo tag.CategoryRepository, logger logger.Interface) *CreateTagUseCase {
	return &CreateTagUseCase{tagRepo: tagRepo, categoryRepo: categoryRepo, logger: logger}
}

func (uc *CreateTagUseCase) Execute(ctx context.Context, cmd CreateTagCommand) (*dto.TagDTO, error) {
	t, err := tag.NewTag(cmd.CategoryID, cmd.Code, cmd.Name)
	if err != nil {
		return nil, err
	}
	t.Icon = cmd.Icon
	t.Color = cmd.Color
	t.Order = cmd.Order

	category, err := uc.categoryRepo.GetByID(ctx, cmd.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tag category: %w", err)
	}
	if category == nil {
		return nil, errors.NewNotFoundError("tag category not found", cmd.CategoryID)
	}

	if err := uc.tagRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	uc.logger.Infow("tag created", "tag_id", t.ID, "category", category.Code, "code", t.Code)
	return dto.ToTagDTO(t), nil
}

type UpdateTagCommand struct {
	TagID string
	Patch tag.TagPatch
}

// UpdateTagUseCase edits presentation fields. The usage counter is not
// writable here.
type UpdateTagUseCase struct {
	tagRepo tag.Repository
	logger  logger.Interface
}

func NewUpdateTagUseCase(tagRepo tag.Repository, logger logger.Interface) *UpdateTagUseCase {
	return &UpdateTagUseCase{tagRepo: tagRepo, logger: logger}
}

func (uc *UpdateTagUseCase) Execute(ctx context.Context, cmd UpdateTagCommand) (*dto.TagDTO, error) {
	t, err := uc.tagRepo.GetByID(ctx, cmd.TagID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("tag not found", cmd.TagID)
	}

	if err := t.Apply(cmd.Patch); err != nil {
		return nil, err
	}
	if err := uc.tagRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	uc.logger.Infow("tag updated", "tag_id", t.ID)
	return dto.ToTagDTO(t), nil
}

type ListTagsUseCase struct {
	tagRepo tag.Repository
	logger  logger.Interface
}

func NewListTagsUseCase(tagRepo tag.Repository, logger logger.Interface) *ListTagsUseCase {
	return &ListTagsUseCase{tagRepo: tagRepo, logger: logger}
}

func (uc *ListTagsUseCase) Execute(ctx context.Context, filter tag.ListFilter) ([]*dto.TagDTO, error) {
	tags, err := uc.tagRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return dto.ToTagDTOs(tags), nil
}

// DeleteTagUseCase hard-deletes a tag nobody references. Any plan
// association, active or retired, blocks the delete.
type DeleteTagUseCase struct {
	tagRepo     tag.Repository
	planTagRepo tag.PlanTagRepository
	logger      logger.Interface
}

func NewDeleteTagUseCase(tagRepo tag.Repository, planTagRepo tag.PlanTagRepository, logger logger.Interface) *DeleteTagUseCase {
	return &DeleteTagUseCase{tagRepo: tagRepo, planTagRepo: planTagRepo, logger: logger}
}

func (uc *DeleteTagUseCase) Execute(ctx context.Context, tagID string) error {
	t, err := uc.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		return fmt.Errorf("failed to get tag: %w", err)
	}
	if t == nil {
		return errors.NewNotFoundError("tag not found", tagID)
	}

	refs, err := uc.planTagRepo.CountByTag(ctx, tagID)
	if err != nil {
		return fmt.Errorf("failed to count tag references: %w", err)
	}
	if refs > 0 {
		return errors.NewPreconditionFailedError(
			"tag is still attached to plans",
			fmt.Sprintf("%d plan(s) reference this tag", refs),
		)
	}

	if err := uc.tagRepo.Delete(ctx, tagID); err != nil {
		return err
	}
	uc.logger.Infow("tag deleted", "tag_id", tagID, "code", t.Code)
	return nil
}
