package models

import "gorm.io/gorm"

// AllModels returns all models for migration
// Note: User must be migrated first as most other models reference it
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&FederatedIdentity{},
		&Risk{},
		&ActionPlan{},
		&RiskAssessment{},
		&PlanUpdate{},
		&ReferenceScale{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
