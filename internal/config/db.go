package config

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"shiptix/internal/utils"
)

var (
	DB   *sql.DB
	dbMu sync.Mutex
)

// ConnectDB initializes the shared DB connection (idempotent).
func ConnectDB(cfg DBConfig) (*sql.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()
	return connectLocked(cfg)
}

func connectLocked(cfg DBConfig) (*sql.DB, error) {
	if DB != nil {
		return DB, nil
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("gagal open DB: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("gagal ping DB: %w", err)
	}

	DB = db
	utils.L().Info("Berhasil konek ke database MySQL", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	return DB, nil
}

// EnsureDB reconnects when needed and pings the shared connection.
func EnsureDB(cfg DBConfig) error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB == nil {
		_, err := connectLocked(cfg)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return DB.PingContext(ctx)
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
	}
}
