package student

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

const studentColumns = "id, name, email, status, program, enrollmentdate, gpa, createdat, updatedat"

func (repository *PostgresRepository) ListStudents(context context.Context, f Filter, limit, offset int) ([]*Student, int, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM records.student
		WHERE TRUE`
	countQuery := `SELECT count(*) FROM records.student WHERE TRUE`

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
		return nil, 0, dberr.Wrap(err, "Student")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Student")
	}
	defer rows.Close()

	var students []*Student
	for rows.Next() {
		s := &Student{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Status, &s.Program, &s.EnrollmentDate, &s.GPA, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "Student")
		}
		students = append(students, s)
	}

	return students, total, nil
}

func (repository *PostgresRepository) GetStudent(context context.Context, id string) (*Student, error) {
	const query = `
		SELECT ` + studentColumns + `
		FROM records.student
		WHERE id = $1`

	s := &Student{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&s.ID, &s.Name, &s.Email, &s.Status, &s.Program, &s.EnrollmentDate, &s.GPA, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Student")
	}

	return s, nil
}

func (repository *PostgresRepository) CreateStudent(context context.Context, s *Student) error {
	const query = `
		INSERT INTO records.student (
			id, name, email, status, program, enrollmentdate, gpa, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		s.ID, s.Name, s.Email, s.Status, s.Program, s.EnrollmentDate, s.GPA, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Student")
	}

	return nil
}

func (repository *PostgresRepository) UpdateStudent(context context.Context, s *Student) error {
	const query = `
		UPDATE records.student
		SET name = $2, email = $3, status = $4, program = $5, enrollmentdate = $6, gpa = $7, updatedat = $8
		WHERE id = $1`

	s.UpdatedAt = time.Now()
	tag, err := repository.db.Exec(context, query,
		s.ID, s.Name, s.Email, s.Status, s.Program, s.EnrollmentDate, s.GPA, s.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Student")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Student")
	}

	return nil
}

func (repository *PostgresRepository) DeleteStudent(context context.Context, id string) error {
	const query = "DELETE FROM records.student WHERE id = $1"

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Student")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Student")
	}

	return nil
}

func (repository *PostgresRepository) GetOverview(context context.Context) (*Overview, error) {
	const query = `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = 'active'),
			count(*) FILTER (WHERE status = 'inactive'),
			count(*) FILTER (WHERE status = 'graduated'),
			COALESCE(avg(gpa), 0)
		FROM records.student`

	overview := &Overview{}
	err := repository.db.QueryRow(context, query).Scan(
		&overview.Total, &overview.Active, &overview.Inactive, &overview.Graduated, &overview.AverageGPA,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Student overview")
	}

	return overview, nil
}
