package infrastructure

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"talent-pipeline/config"
	"talent-pipeline/domain"
)

// NewDatabase opens the configured database and migrates the schema.
func NewDatabase(cfg config.Database, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := openDialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("connected to database and migrated schema", zap.String("driver", cfg.Driver))
	return db, nil
}

// Migrate creates or updates the candidate tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Candidate{}, &domain.IntakeResponse{}); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	return nil
}

func openDialector(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case "mysql":
		return mysql.Open(withParam(dsn, "parseTime=true")), nil
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	case "sqlite", "":
		if dsn == "" {
			dsn = "talent-pipeline.db"
		}
		return sqlite.Open(withParam(dsn, "_pragma=foreign_keys(1)")), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// withParam appends a query parameter to dsn unless its key is already set.
func withParam(dsn, param string) string {
	key, _, _ := strings.Cut(param, "=")
	if strings.Contains(dsn, key+"=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + param
	}
	return dsn + "?" + param
}
