package repositories

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	intconfig "shiptix/internal/config"
	intdb "shiptix/internal/db"
	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

type ScheduleRepository struct {
	DB *sql.DB
}

func (r ScheduleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const scheduleColumns = `id, COALESCE(ship_id,''), COALESCE(departure_port_id,''), COALESCE(arrival_port_id,''),
	departure_time, arrival_time, COALESCE(duration_minutes,0), COALESCE(classes,'[]'), COALESCE(status,'')`

// ListCandidateSchedules pushes the route and status predicates to SQL.
// The calendar-date predicate stays with the engine because it depends on
// the departure port timezone.
func (r ScheduleRepository) ListCandidateSchedules(ctx context.Context, departurePortID, arrivalPortID string) ([]models.Schedule, error) {
	return r.query(ctx, `WHERE departure_port_id=? AND arrival_port_id=? AND status=?`,
		departurePortID, arrivalPortID, string(models.ScheduleScheduled))
}

func (r ScheduleRepository) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	return r.query(ctx, "")
}

func (r ScheduleRepository) GetSchedule(ctx context.Context, id string) (models.Schedule, error) {
	list, err := r.query(ctx, `WHERE id=?`, id)
	if err != nil {
		return models.Schedule{}, err
	}
	if len(list) == 0 {
		return models.Schedule{}, domain.NotFoundError{Resource: "schedule"}
	}
	return list[0], nil
}

func (r ScheduleRepository) query(ctx context.Context, where string, args ...any) ([]models.Schedule, error) {
	db := r.db()
	if db == nil {
		return nil, domain.Unavailable("db tidak tersedia", nil)
	}
	if !intdb.HasTable(ctx, db, "schedules") {
		return []models.Schedule{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM schedules %s ORDER BY departure_time ASC, id ASC`, scheduleColumns, where)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Schedule{}
	for rows.Next() {
		var (
			s       models.Schedule
			dep     sql.NullTime
			arr     sql.NullTime
			classes []byte
			status  string
		)
		if err := rows.Scan(&s.ID, &s.ShipID, &s.DeparturePortID, &s.ArrivalPortID,
			&dep, &arr, &s.DurationMinutes, &classes, &status); err != nil {
			return nil, err
		}
		if !dep.Valid {
			return nil, fmt.Errorf("schedule %s: departure_time kosong", s.ID)
		}
		s.DepartureTime = dep.Time.UTC()
		if arr.Valid {
			s.ArrivalTime = arr.Time.UTC()
		}
		s.Status = models.ScheduleStatus(strings.ToLower(strings.TrimSpace(status)))
		if !s.Status.Valid() {
			return nil, fmt.Errorf("schedule %s: status %q tidak dikenal", s.ID, status)
		}
		if s.Classes, err = DecodeClasses(classes); err != nil {
			return nil, fmt.Errorf("schedule %s: %w", s.ID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r ScheduleRepository) CreateSchedule(ctx context.Context, s models.Schedule) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}
	classes, err := json.Marshal(s.Classes)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO schedules (id, ship_id, departure_port_id, arrival_port_id, departure_time, arrival_time, duration_minutes, classes, status)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		s.ID, s.ShipID, s.DeparturePortID, s.ArrivalPortID,
		s.DepartureTime.UTC(), s.ArrivalTime.UTC(), s.DurationMinutes, string(classes), string(s.Status))
	return wrapWriteErr("schedule", err)
}

func (r ScheduleRepository) UpdateSchedule(ctx context.Context, s models.Schedule) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}
	classes, err := json.Marshal(s.Classes)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `
		UPDATE schedules
		SET ship_id=?, departure_port_id=?, arrival_port_id=?, departure_time=?, arrival_time=?,
		    duration_minutes=?, classes=?, status=?
		WHERE id=?`,
		s.ShipID, s.DeparturePortID, s.ArrivalPortID, s.DepartureTime.UTC(), s.ArrivalTime.UTC(),
		s.DurationMinutes, string(classes), string(s.Status), s.ID)
	if err != nil {
		return wrapWriteErr("schedule", err)
	}
	return expectAffected(res, "schedule")
}

func (r ScheduleRepository) DeleteSchedule(ctx context.Context, id string) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}
	res, err := db.ExecContext(ctx, `DELETE FROM schedules WHERE id=?`, id)
	if err != nil {
		return err
	}
	return expectAffected(res, "schedule")
}

// classRecord is the stored shape of one fare class. Older rows use "class"
// for the name and "seats" for availability.
type classRecord struct {
	ID             any `json:"id"`
	Name           any `json:"name"`
	Class          any `json:"class"`
	Price          any `json:"price"`
	AvailableSeats any `json:"available_seats"`
	Seats          any `json:"seats"`
}

// DecodeClasses maps the classes JSON column to typed fare classes and
// rejects entries that lack a name or a numeric price.
func DecodeClasses(raw []byte) ([]models.FareClass, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []models.FareClass{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var recs []classRecord
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("classes bukan array JSON: %w", err)
	}

	out := make([]models.FareClass, 0, len(recs))
	for i, rec := range recs {
		name := strings.TrimSpace(cast.ToString(firstNonNil(rec.Name, rec.Class)))
		if name == "" {
			return nil, fmt.Errorf("classes[%d]: nama kelas kosong", i)
		}
		if rec.Price == nil {
			return nil, fmt.Errorf("classes[%d]: price wajib ada", i)
		}
		price, err := cast.ToInt64E(numberValue(rec.Price))
		if err != nil || price < 0 {
			return nil, fmt.Errorf("classes[%d]: price tidak valid: %v", i, rec.Price)
		}
		seats := 0
		if v := firstNonNil(rec.AvailableSeats, rec.Seats); v != nil {
			if seats, err = cast.ToIntE(numberValue(v)); err != nil || seats < 0 {
				return nil, fmt.Errorf("classes[%d]: available_seats tidak valid: %v", i, v)
			}
		}
		out = append(out, models.FareClass{
			ID:             cast.ToString(numberValue(rec.ID)),
			Name:           name,
			Price:          price,
			AvailableSeats: seats,
		})
	}
	return out, nil
}

func firstNonNil(vals ...any) any {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

// numberValue unwraps json.Number so cast sees a plain string.
func numberValue(v any) any {
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	return v
}
