package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kimono-rental/kimono/internal/application/tag/usecases"
	"github.com/kimono-rental/kimono/internal/domain/tag"
	"github.com/kimono-rental/kimono/internal/shared/id"
	"github.com/kimono-rental/kimono/internal/shared/logger"
	"github.com/kimono-rental/kimono/internal/shared/utils"
)

// TagHandler serves the tag vocabulary. Writes are admin-only; the
// usage counter is read-only over HTTP.
type TagHandler struct {
	createCategoryUC createCategoryUseCase
	listCategoriesUC listCategoriesUseCase
	deleteCategoryUC deleteCategoryUseCase
	createTagUC      createTagUseCase
	updateTagUC      updateTagUseCase
	listTagsUC       listTagsUseCase
	deleteTagUC      deleteTagUseCase
	logger           logger.Interface
}

func NewTagHandler(
	createCategoryUC createCategoryUseCase,
	listCategoriesUC listCategoriesUseCase,
	deleteCategoryUC deleteCategoryUseCase,
	createTagUC createTagUseCase,
	updateTagUC updateTagUseCase,
	listTagsUC listTagsUseCase,
	deleteTagUC deleteTagUseCase,
	logger logger.Interface,
) *TagHandler {
	return &TagHandler{
		createCategoryUC: createCategoryUC,
		listCategoriesUC: listCategoriesUC,
		deleteCategoryUC: deleteCategoryUC,
		createTagUC:      createTagUC,
		updateTagUC:      updateTagUC,
		listTagsUC:       listTagsUC,
		deleteTagUC:      deleteTagUC,
		logger:           logger,
	}
}

type CreateCategoryRequest struct {
	Code  string `json:"code" binding:"required,max=64"`
	Name  string `json:"name" binding:"required,max=100"`
	Order int    `json:"order" binding:"gte=0"`
}

type CreateTagRequest struct {
	CategoryID string `json:"categoryId" binding:"required"`
	Code       string `json:"code" binding:"required,max=64"`
	Name       string `json:"name" binding:"required,max=100"`
	Icon       string `json:"icon" binding:"max=100"`
	Color      string `json:"color" binding:"omitempty,hexcolor"`
	Order      int    `json:"order" binding:"gte=0"`
}

type UpdateTagRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Icon     *string `json:"icon" binding:"omitempty,max=100"`
	Color    *string `json:"color" binding:"omitempty,hexcolor"`
	Order    *int    `json:"order" binding:"omitempty,gte=0"`
	IsActive *bool   `json:"isActive"`
}

func (h *TagHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create tag category", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createCategoryUC.Execute(c.Request.Context(), usecases.CreateCategoryCommand{
		Code:  req.Code,
		Name:  req.Name,
		Order: req.Order,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Tag category created successfully")
}

func (h *TagHandler) ListCategories(c *gin.Context) {
	result, err := h.listCategoriesUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *TagHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := pathID(c, id.PrefixTagCategory, "tag category")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.deleteCategoryUC.Execute(c.Request.Context(), categoryID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Tag category deleted successfully", gin.H{"id": categoryID})
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create tag", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createTagUC.Execute(c.Request.Context(), usecases.CreateTagCommand{
		CategoryID: req.CategoryID,
		Code:       req.Code,
		Name:       req.Name,
		Icon:       req.Icon,
		Color:      req.Color,
		Order:      req.Order,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Tag created successfully")
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	tagID, err := pathID(c, id.PrefixTag, "tag")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update tag", "tag_id", tagID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateTagUC.Execute(c.Request.Context(), usecases.UpdateTagCommand{
		TagID: tagID,
		Patch: tag.TagPatch{
			Name:     req.Name,
			Icon:     req.Icon,
			Color:    req.Color,
			Order:    req.Order,
			IsActive: req.IsActive,
		},
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tag updated successfully", result)
}

// ListTags filters by ?category_id= and, unless ?all=true, active tags only.
func (h *TagHandler) ListTags(c *gin.Context) {
	result, err := h.listTagsUC.Execute(c.Request.Context(), tag.ListFilter{
		CategoryID: c.Query("category_id"),
		ActiveOnly: c.Query("all") != "true",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	tagID, err := pathID(c, id.PrefixTag, "tag")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.deleteTagUC.Execute(c.Request.Context(), tagID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Tag deleted successfully", gin.H{"id": tagID})
}
