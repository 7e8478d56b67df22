package constants

const (
	// Environments
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID     = "user_id"
	ContextKeyUserRole   = "user_role"
	ContextKeyRequestID  = "request_id"
	ContextKeyMerchantID = "merchant_id"

	// Roles
	RoleMerchant = "merchant"
	RoleAdmin    = "admin"

	// Database table names
	TableRentalPlans        = "rental_plans"
	TablePlanTags           = "plan_tags"
	TablePlanComponents     = "plan_components"
	TablePlanUpgrades       = "plan_upgrades"
	TableTags               = "tags"
	TableTagCategories      = "tag_categories"
	TableMerchants          = "merchants"
	TableMerchantComponents = "merchant_components"
	TableComponentTemplates = "component_templates"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgValidationFailed    = "Validation failed"
)
