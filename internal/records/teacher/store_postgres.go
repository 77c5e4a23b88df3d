package teacher

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/registra-app/registra/internal/platform/apperr"
	"github.com/registra-app/registra/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const teacherColumns = "id, name, email, status, department, hiredate, rating, createdat, updatedat"

func (repository *PostgresRepository) ListTeachers(context context.Context, f Filter, limit, offset int) ([]*Teacher, int, error) {
	query := `
		SELECT ` + teacherColumns + `
		FROM records.teacher
		WHERE TRUE`
	countQuery := `SELECT count(*) FROM records.teacher WHERE TRUE`

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		clause := ` AND (name ILIKE $` + strconv.Itoa(len(args)+1) + ` OR email ILIKE $` + strconv.Itoa(len(args)+1) + `)`
		query += clause
		countQuery += clause
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	if f.Status != "" {
		clause := ` AND status = $` + strconv.Itoa(len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, f.Status)
		countArgs = append(countArgs, f.Status)
	}

	query += ` ORDER BY createdat DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Teacher")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Teacher")
	}
	defer rows.Close()

	var teachers []*Teacher
	for rows.Next() {
		t := &Teacher{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Email, &t.Status, &t.Department, &t.HireDate, &t.Rating, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "Teacher")
		}
		teachers = append(teachers, t)
	}

	return teachers, total, nil
}

func (repository *PostgresRepository) GetTeacher(context context.Context, id string) (*Teacher, error) {
	const query = `
		SELECT ` + teacherColumns + `
		FROM records.teacher
		WHERE id = $1`

	t := &Teacher{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&t.ID, &t.Name, &t.Email, &t.Status, &t.Department, &t.HireDate, &t.Rating, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Teacher")
	}

	return t, nil
}

func (repository *PostgresRepository) CreateTeacher(context context.Context, t *Teacher) error {
	const query = `
		INSERT INTO records.teacher (
			id, name, email, status, department, hiredate, rating, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		t.ID, t.Name, t.Email, t.Status, t.Department, t.HireDate, t.Rating, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Teacher")
	}

	return nil
}

func (repository *PostgresRepository) UpdateTeacher(context context.Context, t *Teacher) error {
	const query = `
		UPDATE records.teacher
		SET name = $2, email = $3, status = $4, department = $5, hiredate = $6, rating = $7, updatedat = $8
		WHERE id = $1`

	t.UpdatedAt = time.Now()
	tag, err := repository.db.Exec(context, query,
		t.ID, t.Name, t.Email, t.Status, t.Department, t.HireDate, t.Rating, t.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Teacher")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Teacher")
	}

	return nil
}

func (repository *PostgresRepository) DeleteTeacher(context context.Context, id string) error {
	const query = "DELETE FROM records.teacher WHERE id = $1"

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Teacher")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Teacher")
	}

	return nil
}

func (repository *PostgresRepository) GetOverview(context context.Context) (*Overview, error) {
	const query = `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = 'active'),
			count(*) FILTER (WHERE status = 'inactive'),
			count(*) FILTER (WHERE status = 'on-leave'),
			COALESCE(avg(rating), 0)
		FROM records.teacher`

	overview := &Overview{}
	err := repository.db.QueryRow(context, query).Scan(
		&overview.Total, &overview.Active, &overview.Inactive, &overview.OnLeave, &overview.AverageRating,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Teacher overview")
	}

	return overview, nil
}
