package db

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"shiptix/internal/utils"
)

type tableDDL struct {
	name string
	ddl  string
}

// schema is created in dependency order.
var schema = []tableDDL{
	{"operators", `
CREATE TABLE IF NOT EXISTS operators (
	id VARCHAR(64) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	phone VARCHAR(100) NULL,
	email VARCHAR(255) NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"ports", `
CREATE TABLE IF NOT EXISTS ports (
	id VARCHAR(64) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	city VARCHAR(255) NOT NULL,
	code VARCHAR(20) NULL,
	timezone VARCHAR(64) NULL,
	KEY idx_city (city)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"ships", `
CREATE TABLE IF NOT EXISTS ships (
	id VARCHAR(64) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	capacity INT NOT NULL DEFAULT 0,
	operator_id VARCHAR(64) NULL,
	KEY idx_operator (operator_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"schedules", `
CREATE TABLE IF NOT EXISTS schedules (
	id VARCHAR(64) PRIMARY KEY,
	ship_id VARCHAR(64) NOT NULL,
	departure_port_id VARCHAR(64) NOT NULL,
	arrival_port_id VARCHAR(64) NOT NULL,
	departure_time DATETIME NOT NULL,
	arrival_time DATETIME NOT NULL,
	duration_minutes INT NOT NULL DEFAULT 0,
	classes JSON NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
	KEY idx_route_status (departure_port_id, arrival_port_id, status),
	KEY idx_departure (departure_time)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"bookings", `
CREATE TABLE IF NOT EXISTS bookings (
	id VARCHAR(64) PRIMARY KEY,
	booking_code VARCHAR(20) NOT NULL,
	schedule_id VARCHAR(64) NOT NULL,
	contact_name VARCHAR(255) NOT NULL,
	contact_email VARCHAR(255) NOT NULL,
	contact_phone VARCHAR(100) NULL,
	selected_class VARCHAR(100) NOT NULL,
	total_passengers INT NOT NULL DEFAULT 0,
	payment_amount BIGINT NOT NULL DEFAULT 0,
	status VARCHAR(30) NOT NULL DEFAULT 'pending_payment',
	created_at DATETIME NOT NULL,
	UNIQUE KEY uniq_booking_code (booking_code),
	KEY idx_email (contact_email),
	KEY idx_schedule (schedule_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"booking_passengers", `
CREATE TABLE IF NOT EXISTS booking_passengers (
	id VARCHAR(64) PRIMARY KEY,
	booking_id VARCHAR(64) NOT NULL,
	name VARCHAR(255) NOT NULL,
	category VARCHAR(20) NOT NULL,
	id_number VARCHAR(100) NULL,
	KEY idx_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"users", `
CREATE TABLE IF NOT EXISTS users (
	id VARCHAR(64) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	username VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(30) NOT NULL DEFAULT 'admin',
	UNIQUE KEY uniq_username (username),
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
}

// EnsureSchema creates missing tables. Existing tables are left as they are.
func EnsureSchema(ctx context.Context, db *sql.DB) (int, error) {
	created := 0
	for _, t := range schema {
		if HasTable(ctx, db, t.name) {
			continue
		}
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return created, fmt.Errorf("create table %s: %w", t.name, err)
		}
		created++
		utils.L().Info("tabel dibuat", zap.String("table", t.name))
	}
	return created, nil
}
