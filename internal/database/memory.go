package database

import "gorm.io/gorm"

// NewInMemory opens a migrated SQLite database that lives as long as its
// single connection. Transactions must only use the tx handle they are given.
func NewInMemory() (*gorm.DB, error) {
	db, err := Connect(":memory:")
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
