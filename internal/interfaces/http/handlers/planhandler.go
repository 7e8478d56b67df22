package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/kimono-rental/kimono/internal/application/plan/usecases"
	"github.com/kimono-rental/kimono/internal/shared/id"
	"github.com/kimono-rental/kimono/internal/shared/logger"
	"github.com/kimono-rental/kimono/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC     createPlanUseCase
	updatePlanUC     updatePlanUseCase
	softDeletePlanUC softDeletePlanUseCase
	getPlanUC        getPlanUseCase
	listPlansUC      listMerchantPlansUseCase
	logger           logger.Interface
}

func NewPlanHandler(
	createPlanUC createPlanUseCase,
	updatePlanUC updatePlanUseCase,
	softDeletePlanUC softDeletePlanUseCase,
	getPlanUC getPlanUseCase,
	listPlansUC listMerchantPlansUseCase,
	logger logger.Interface,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:     createPlanUC,
		updatePlanUC:     updatePlanUC,
		softDeletePlanUC: softDeletePlanUC,
		getPlanUC:        getPlanUC,
		listPlansUC:      listPlansUC,
		logger:           logger,
	}
}

// CreatePlan creates a draft plan for the caller's merchant
// @Summary Create plan
// @Tags Merchant Plans
// @Accept json
// @Produce json
// @Security Bearer
// @Param plan body CreatePlanRequest true "Plan fields and optional associations"
// @Success 201 {object} utils.APIResponse{data=dto.PlanDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /api/merchant/plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, merchantID, err := callerIDs(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err, "merchant_id", merchantID)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createPlanUC.Execute(c.Request.Context(), req.toCommand(merchantID, userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Plan created successfully")
}

// UpdatePlan reconciles the plan with the payload in one transaction.
// @Summary Update plan
// @Description Base fields, tags, components and upgrades are replaced together. Omitted associations are left alone; null clears a nullable field. Retired plans cannot be updated.
// @Tags Merchant Plans
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Plan ID"
// @Param plan body UpdatePlanRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.PlanDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 412 {object} utils.APIResponse
// @Router /api/merchant/plans/{id} [patch]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	userID, merchantID, err := callerIDs(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	planID, err := pathID(c, id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		h.logger.Warnw("invalid request body for update plan",
			"plan_id", planID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	if body, ok := c.Get(gin.BodyBytesKey); ok {
		if raw, ok := body.([]byte); ok {
			if err := req.markExplicitNulls(raw); err != nil {
				utils.ErrorResponseWithError(c, utils.BindingError(err))
				return
			}
		}
	}

	result, err := h.updatePlanUC.Execute(c.Request.Context(), req.toCommand(planID, merchantID, userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan updated successfully", result)
}

// DeletePlan retires the plan; bookings keep referencing it.
// @Summary Delete plan
// @Tags Merchant Plans
// @Produce json
// @Security Bearer
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/merchant/plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, merchantID, err := callerIDs(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	planID, err := pathID(c, id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.SoftDeletePlanCommand{PlanID: planID, MerchantID: merchantID, ActorID: userID}
	if err := h.softDeletePlanUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan deleted successfully", gin.H{"id": planID})
}

func (h *PlanHandler) GetMerchantPlan(c *gin.Context) {
	_, merchantID, err := callerIDs(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	planID, err := pathID(c, id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPlanUC.ExecuteForMerchant(c.Request.Context(), planID, merchantID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// @Summary List own plans
// @Tags Merchant Plans
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param include_retired query bool false "Include soft-deleted plans"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /api/merchant/plans [get]
func (h *PlanHandler) ListMerchantPlans(c *gin.Context) {
	_, merchantID, err := callerIDs(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listPlansUC.Execute(c.Request.Context(), usecases.ListMerchantPlansQuery{
		MerchantID:     merchantID,
		IncludeRetired: c.Query("include_retired") == "true",
		Page:           p.Page,
		PageSize:       p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Plans, result.Total, result.Page, result.PageSize)
}

// GetPublicPlan serves the storefront view of an active, published plan.
// @Summary Get published plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse{data=dto.PlanDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /api/plans/{id} [get]
func (h *PlanHandler) GetPublicPlan(c *gin.Context) {
	planID, err := pathID(c, id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPlanUC.ExecutePublic(c.Request.Context(), planID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
