package models

// All lists every model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&MerchantModel{},
		&ComponentTemplateModel{},
		&MerchantComponentModel{},
		&TagCategoryModel{},
		&TagModel{},
		&RentalPlanModel{},
		&PlanTagModel{},
		&PlanComponentModel{},
		&PlanUpgradeModel{},
	}
}
