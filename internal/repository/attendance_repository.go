package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// AttendanceFilter captures history query parameters.
type AttendanceFilter struct {
	From *time.Time
	To   *time.Time
}

// AttendanceRepository encapsulates attendance record persistence. A partial
// unique index on (employee_id, date) backs the one-record-per-day invariant.
type AttendanceRepository interface {
	Create(ctx context.Context, record *domain.AttendanceRecord) error
	Update(ctx context.Context, record *domain.AttendanceRecord) error
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*domain.AttendanceRecord, error)
	ListByEmployee(ctx context.Context, employeeID string, filter AttendanceFilter) ([]domain.AttendanceRecord, error)
}

type attendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository returns a Postgres-backed implementation.
func NewAttendanceRepository(pool *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{pool: pool}
}

func (r *attendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	const query = `
        INSERT INTO attendance_records (employee_id, date, check_in_at, check_out_at, hours_worked, pay)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		record.EmployeeID,
		record.Date,
		record.CheckInAt,
		record.CheckOutAt,
		record.HoursWorked,
		record.Pay,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *attendanceRepository) Update(ctx context.Context, record *domain.AttendanceRecord) error {
	const query = `
        UPDATE attendance_records
        SET check_in_at=$1, check_out_at=$2, hours_worked=$3, pay=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		record.CheckInAt,
		record.CheckOutAt,
		record.HoursWorked,
		record.Pay,
		record.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*domain.AttendanceRecord, error) {
	const query = `
        SELECT id, employee_id, date, check_in_at, check_out_at, hours_worked, pay, created_at, updated_at
        FROM attendance_records WHERE employee_id=$1 AND date=$2`

	var record domain.AttendanceRecord
	if err := r.pool.QueryRow(ctx, query, employeeID, date).Scan(
		&record.ID,
		&record.EmployeeID,
		&record.Date,
		&record.CheckInAt,
		&record.CheckOutAt,
		&record.HoursWorked,
		&record.Pay,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter AttendanceFilter) ([]domain.AttendanceRecord, error) {
	query := `
        SELECT id, employee_id, date, check_in_at, check_out_at, hours_worked, pay, created_at, updated_at
        FROM attendance_records WHERE employee_id=$1`
	args := []any{employeeID}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND date >= $2`
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		if filter.From != nil {
			query += ` AND date <= $3`
		} else {
			query += ` AND date <= $2`
		}
	}
	query += ` ORDER BY date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AttendanceRecord
	for rows.Next() {
		var record domain.AttendanceRecord
		if err := rows.Scan(
			&record.ID,
			&record.EmployeeID,
			&record.Date,
			&record.CheckInAt,
			&record.CheckOutAt,
			&record.HoursWorked,
			&record.Pay,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
