package handlers

import (
	"context"

	"github.com/kimono-rental/kimono/internal/application/tag/dto"
	"github.com/kimono-rental/kimono/internal/application/tag/usecases"
	"github.com/kimono-rental/kimono/internal/domain/tag"
)

// Use case interfaces for TagHandler

type createCategoryUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateCategoryCommand) (*dto.CategoryDTO, error)
}

type listCategoriesUseCase interface {
	Execute(ctx context.Context) ([]*dto.CategoryDTO, error)
}

type deleteCategoryUseCase interface {
	Execute(ctx context.Context, categoryID string) error
}

type createTagUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateTagCommand) (*dto.TagDTO, error)
}

type updateTagUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateTagCommand) (*dto.TagDTO, error)
}

type listTagsUseCase interface {
	Execute(ctx context.Context, filter tag.ListFilter) ([]*dto.TagDTO, error)
}

type deleteTagUseCase interface {
	Execute(ctx context.Context, tagID string) error
}
