package usecases

import (
	"context"
	"fmt"

	"github.com/kimono-rental/kimono/internal/application/tag/dto"
	"github.com/kimono-rental/kimono/internal/domain/tag"
	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

type CreateCategoryCommand struct {
	Code  string
	Name  string
	Order int
}

type CreateCategoryUseCase struct {
	categoryRepo tag.CategoryRepository
	logger       logger.Interface
}

func NewCreateCategoryUseCase(categoryRepo tag.CategoryRepository, logger logger.Interface) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryRepo: categoryRepo, logger: logger}
}

func (uc *CreateCategoryUseCase) Execute(ctx context.Context, cmd CreateCategoryCommand) (*dto.CategoryDTO, error) {
	category, err := tag.NewCategory(cmd.Code, cmd.Name, cmd.Order)
	if err != nil {
		return nil, err
	}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	uc.logger.Infow("tag category created", "category_id", category.ID, "code", category.Code)
	return dto.ToCategoryDTO(category), nil
}

type ListCategoriesUseCase struct {
	categoryRepo tag.CategoryRepository
	logger       logger.Interface
}

func NewListCategoriesUseCase(categoryRepo tag.CategoryRepository, logger logger.Interface) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo, logger: logger}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]*dto.CategoryDTO, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tag categories: %w", err)
	}
	return dto.ToCategoryDTOs(categories), nil
}

// DeleteCategoryUseCase removes an empty category. A category that still
// holds tags is PreconditionFailed.
type DeleteCategoryUseCase struct {
	categoryRepo tag.CategoryRepository
	logger       logger.Interface
}

func NewDeleteCategoryUseCase(categoryRepo tag.CategoryRepository, logger logger.Interface) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{categoryRepo: categoryRepo, logger: logger}
}

func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, categoryID string) error {
	category, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to get tag category: %w", err)
	}
	if category == nil {
		return errors.NewNotFoundError("tag category not found", categoryID)
	}

	count, err := uc.categoryRepo.CountTags(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to count tags: %w", err)
	}
	if count > 0 {
		return errors.NewPreconditionFailedError(
			"tag category still contains tags",
			fmt.Sprintf("%d tag(s) must be deleted first", count),
		)
	}

	if err := uc.categoryRepo.Delete(ctx, categoryID); err != nil {
		return err
	}
	uc.logger.Infow("tag category deleted", "category_id", categoryID, "code", category.Code)
	return nil
}
