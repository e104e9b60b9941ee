package models

import (
	"fmt"
	"strings"

	"github.com/prismhq/prism/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.DSN))
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Unique-constraint violations surface as gorm.ErrDuplicatedKey so
		// services can translate them to validation failures.
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

// sqliteDSN enables foreign key enforcement, which sqlite leaves off by
// default. It must be a DSN parameter so every pooled connection gets it;
// without it the OnDelete:CASCADE constraints are never applied.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&Workspace{},
		&TeamMember{},
		&Update{},
		&Meeting{},
		&MeetingParticipant{},
		&Project{},
		&ProjectMember{},
		&Task{},
		&TaskMember{},
		&Subtask{},
		&TaskDependency{},
	)
}

func GetDB() *gorm.DB {
	return DB
}
