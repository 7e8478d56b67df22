package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kimono-rental/kimono/internal/shared/constants"
	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/utils"
)

// callerIDs returns the authenticated user and the merchant they act for, as
// placed in the context by the auth and merchant middlewares.
func callerIDs(c *gin.Context) (userID, merchantID string, err error) {
	userID = c.GetString(constants.ContextKeyUserID)
	if userID == "" {
		return "", "", errors.NewUnauthorizedError("user not authenticated")
	}
	merchantID = c.GetString(constants.ContextKeyMerchantID)
	if merchantID == "" {
		return "", "", errors.NewForbiddenError("merchant account required")
	}
	return userID, merchantID, nil
}

// pathID reads the ":id" route parameter and checks its prefix.
func pathID(c *gin.Context, prefix, entityName string) (string, error) {
	return utils.ParseSIDParam(c, "id", prefix, entityName)
}
