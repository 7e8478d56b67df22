package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kimono-rental/kimono/internal/domain/merchant"
	"github.com/kimono-rental/kimono/internal/shared/constants"
	"github.com/kimono-rental/kimono/internal/shared/logger"
	"github.com/kimono-rental/kimono/internal/shared/utils"
)

// MerchantResolver is implemented by the merchant application resolver.
type MerchantResolver interface {
	ResolveApproved(ctx context.Context, userID string) (*merchant.Merchant, error)
}

// MerchantMiddleware binds the caller to the approved merchant they own.
// Handlers behind it read the merchant id from the context.
type MerchantMiddleware struct {
	resolver MerchantResolver
	logger   logger.Interface
}

func NewMerchantMiddleware(resolver MerchantResolver, logger logger.Interface) *MerchantMiddleware {
	return &MerchantMiddleware{
		resolver: resolver,
		logger:   logger,
	}
}

func (m *MerchantMiddleware) RequireApprovedMerchant() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(constants.ContextKeyUserID)
		if userID == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		mer, err := m.resolver.ResolveApproved(c.Request.Context(), userID)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyMerchantID, mer.ID)
		c.Next()
	}
}
