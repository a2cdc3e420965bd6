package tenant

import "gorm.io/gorm"

// Scope filters any query down to one restaurant group
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// LocationScope narrows further to a single store
func LocationScope(companyID, locationID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ? AND location_id = ?", companyID, locationID)
	}
}
