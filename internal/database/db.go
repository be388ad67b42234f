package database

import (
	"fmt"
	"time"

	"bbs-manager/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to the configured database and runs migrations. The retry
// loop covers the container-startup window where the DB is not up yet.
func Open(driver, dsn string, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	var db *gorm.DB

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Info("connecting to database", zap.String("driver", driver), zap.Int("attempt", i), zap.Int("max_attempts", maxAttempts))

		// TranslateError maps driver duplicate-key failures to
		// gorm.ErrDuplicatedKey, which the unique users.email index relies on.
		db, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}

		log.Warn("database connection failed", zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database after %d attempts: %w", maxAttempts, err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.BBSRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}
