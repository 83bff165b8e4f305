package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "shiptix/internal/config"
	intdb "shiptix/internal/db"
	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, COALESCE(booking_code,''), COALESCE(schedule_id,''), COALESCE(contact_name,''),
	COALESCE(contact_email,''), COALESCE(contact_phone,''), COALESCE(selected_class,''),
	COALESCE(total_passengers,0), COALESCE(payment_amount,0), COALESCE(status,''), created_at`

// CreateBooking stores the booking and its passengers in one transaction.
func (r BookingRepository) CreateBooking(ctx context.Context, b models.Booking) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO bookings (id, booking_code, schedule_id, contact_name, contact_email, contact_phone,
		                      selected_class, total_passengers, payment_amount, status, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.BookingCode, b.ScheduleID, b.ContactName, b.ContactEmail, intdb.NullIfEmpty(b.ContactPhone),
		b.SelectedClass, b.TotalPassengers, b.PaymentAmount, string(b.Status), b.CreatedAt.UTC(),
	); err != nil {
		return wrapWriteErr("booking", err)
	}

	for _, p := range b.Passengers {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO booking_passengers (id, booking_id, name, category, id_number)
			VALUES (?,?,?,?,?)`,
			p.ID, b.ID, p.Name, string(p.Category), intdb.NullIfEmpty(p.IDNumber),
		); err != nil {
			return fmt.Errorf("insert passenger: %w", err)
		}
	}

	return tx.Commit()
}

func (r BookingRepository) GetBookingByCode(ctx context.Context, code string) (models.Booking, error) {
	db := r.db()
	if db == nil {
		return models.Booking{}, domain.Unavailable("db tidak tersedia", nil)
	}
	if !intdb.HasTable(ctx, db, "bookings") {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}

	b, err := scanBooking(db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE UPPER(booking_code)=? LIMIT 1`,
		strings.ToUpper(strings.TrimSpace(code))))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	if err != nil {
		return models.Booking{}, err
	}

	b.Passengers, err = r.passengers(ctx, db, `WHERE booking_id=?`, b.ID)
	return b, err
}

func (r BookingRepository) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return r.list(ctx, "")
}

// FindBookingsByEmail matches the contact email case-insensitively.
func (r BookingRepository) FindBookingsByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return r.list(ctx, `WHERE LOWER(contact_email)=?`, strings.ToLower(strings.TrimSpace(email)))
}

func (r BookingRepository) list(ctx context.Context, where string, args ...any) ([]models.Booking, error) {
	db := r.db()
	if db == nil {
		return nil, domain.Unavailable("db tidak tersedia", nil)
	}
	if !intdb.HasTable(ctx, db, "bookings") {
		return []models.Booking{}, nil
	}

	rows, err := db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings `+where+` ORDER BY created_at DESC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) ListBookingPassengers(ctx context.Context) ([]models.BookingPassenger, error) {
	db := r.db()
	if db == nil {
		return nil, domain.Unavailable("db tidak tersedia", nil)
	}
	return r.passengers(ctx, db, "")
}

func (r BookingRepository) passengers(ctx context.Context, db *sql.DB, where string, args ...any) ([]models.BookingPassenger, error) {
	out := []models.BookingPassenger{}
	if !intdb.HasTable(ctx, db, "booking_passengers") {
		return out, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, COALESCE(booking_id,''), COALESCE(name,''), COALESCE(category,''), COALESCE(id_number,'')
		FROM booking_passengers `+where+` ORDER BY booking_id ASC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p   models.BookingPassenger
			cat string
		)
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Name, &cat, &p.IDNumber); err != nil {
			return nil, err
		}
		p.Category = models.PassengerCategory(cat)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r BookingRepository) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}
	res, err := db.ExecContext(ctx, `UPDATE bookings SET status=? WHERE id=?`, string(status), id)
	if err != nil {
		return err
	}
	return expectAffected(res, "booking")
}

func (r BookingRepository) DeleteBooking(ctx context.Context, id string) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_passengers WHERE booking_id=?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return err
	}
	if err := expectAffected(res, "booking"); err != nil {
		return err
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var (
		b       models.Booking
		status  string
		created sql.NullTime
	)
	if err := row.Scan(&b.ID, &b.BookingCode, &b.ScheduleID, &b.ContactName, &b.ContactEmail,
		&b.ContactPhone, &b.SelectedClass, &b.TotalPassengers, &b.PaymentAmount, &status, &created); err != nil {
		return models.Booking{}, err
	}
	b.Status = models.BookingStatus(status)
	if created.Valid {
		b.CreatedAt = created.Time.UTC()
	}
	return b, nil
}
