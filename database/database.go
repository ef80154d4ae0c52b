package database

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"pos-kemasan/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database and sets up the connection pool.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := buildDialector(cfg, cfg.DBName)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	slog.Info("connected to database", "driver", cfg.DBDriver, "name", cfg.DBName)
	return db, nil
}

func gormConfig(cfg *config.Config) *gorm.Config {
	level := gormlogger.Silent
	if !cfg.IsProduction() {
		level = gormlogger.Warn
	}
	return &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	}
}

func buildDialector(cfg *config.Config, dbName string) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
				cfg.DBHost, cfg.DBUser, cfg.DBPassword, dbName, cfg.DBPort)
		}
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, dbName)
		}
		return mysql.Open(dsn), nil
	case "mssql", "sqlserver":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
				cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, dbName)
		}
		return sqlserver.Open(dsn), nil
	case "sqlite":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = dbName + ".db?_foreign_keys=on"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("database: unsupported DB_DRIVER %q (supported: mysql, postgres, mssql, sqlite)", cfg.DBDriver)
	}
}

var validDBName = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// EnsureDatabaseExists connects to the server without selecting a database
// and creates cfg.DBName when missing. SQLite creates its file on open.
func EnsureDatabaseExists(cfg *config.Config) error {
	if cfg.DBDSN != "" || cfg.DBDriver == "sqlite" {
		return nil
	}
	if !validDBName.MatchString(cfg.DBName) {
		return fmt.Errorf("database: invalid database name %q", cfg.DBName)
	}

	var serverDB string
	switch cfg.DBDriver {
	case "postgres":
		serverDB = "postgres"
	case "mssql", "sqlserver":
		serverDB = "master"
	}

	dialector, err := buildDialector(cfg, serverDB)
	if err != nil {
		return err
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return fmt.Errorf("database: connect to server: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	switch cfg.DBDriver {
	case "postgres":
		var exists bool
		if err := db.Raw("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = ?)", cfg.DBName).Scan(&exists).Error; err != nil {
			return fmt.Errorf("database: check %s: %w", cfg.DBName, err)
		}
		if exists {
			return nil
		}
		return db.Exec("CREATE DATABASE " + cfg.DBName).Error
	case "mysql":
		return db.Exec("CREATE DATABASE IF NOT EXISTS " + cfg.DBName).Error
	default:
		return db.Exec("IF DB_ID('" + cfg.DBName + "') IS NULL CREATE DATABASE " + cfg.DBName).Error
	}
}
