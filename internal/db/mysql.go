package db

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"hypenest/internal/model"
)

// NewMySQL returns a connected GORM DB instance. Driver errors such as
// duplicate keys are translated to gorm's portable sentinels.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// Models lists every table owned by the service in creation order.
func Models() []interface{} {
	return []interface{}{
		&model.Brand{},
		&model.Creator{},
		&model.Account{},
		&model.OTP{},
	}
}

// Migrate creates or updates the schema, dropping existing tables first when
// reset is set.
func Migrate(db *gorm.DB, reset bool, log *slog.Logger) error {
	models := Models()
	if reset {
		log.Warn("RESET_DB=true detected, dropping all tables")
		for i := len(models) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(models[i]); err != nil {
				log.Warn("drop table failed (may not exist)", "error", err)
			}
		}
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
