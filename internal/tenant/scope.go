// Package tenant restricts queries to a single company.
package tenant

import "gorm.io/gorm"

// Scope filters on the company_id column of the queried table.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return ScopeColumn("company_id", companyID)
}

// ScopeColumn filters on a qualified column, for joins where company_id is
// ambiguous.
func ScopeColumn(column, companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", companyID)
	}
}
