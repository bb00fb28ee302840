package database

import (
	"fmt"

	"gorm.io/gorm"
)

// CountRows returns the number of rows in a table. It is used by the
// audit trail stats endpoint and works on every supported dialect.
func CountRows(db *gorm.DB, tableName string) (int64, error) {
	var count int64
	if err := db.Table(tableName).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count rows in table %s: %w", tableName, err)
	}
	return count, nil
}
