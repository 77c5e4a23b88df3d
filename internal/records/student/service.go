package student

import (
	"context"
	"log/slog"

	"github.com/registra-app/registra/internal/platform/validate"
	"github.com/registra-app/registra/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListStudents(context context.Context, filter Filter, limit, offset int) ([]*Student, int, error) {
	if filter.Status != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldStatus, filter.Status, Statuses...)
		if err := validator.Err(); err != nil {
			return nil, 0, err
		}
	}
	return service.repo.ListStudents(context, filter, limit, offset)
}

func (service *Service) GetStudent(context context.Context, id string) (*Student, error) {
	return service.repo.GetStudent(context, id)
}

func (service *Service) GetOverview(context context.Context) (*Overview, error) {
	return service.repo.GetOverview(context)
}

func validateStudent(s *Student) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, s.Name).MaxLen(FieldName, s.Name, 200)
	validator.Required(FieldEmail, s.Email).Email(FieldEmail, s.Email)
	validator.OneOf(FieldStatus, s.Status, Statuses...)
	validator.MaxLen(FieldProgram, s.Program, 200)
	validator.RangeFloat(FieldGPA, s.GPA, 0.0, 4.0)
	validator.Custom(FieldEnrollmentDate, s.EnrollmentDate.IsZero(), "Enrollment date is required")

	return validator.Err()
}

func (service *Service) CreateStudent(context context.Context, s *Student) error {
	if s.Status == "" {
		s.Status = StatusActive
	}

	if err := validateStudent(s); err != nil {
		return err
	}

	s.ID = uuid.New()
	if err := service.repo.CreateStudent(context, s); err != nil {
		return err
	}

	service.logger.Info("student_created", slog.String("student_id", s.ID))
	return nil
}

func (service *Service) UpdateStudent(context context.Context, id string, s *Student) error {
	s.ID = id

	if err := validateStudent(s); err != nil {
		return err
	}

	if err := service.repo.UpdateStudent(context, s); err != nil {
		return err
	}

	service.logger.Info("student_updated", slog.String("student_id", id))
	return nil
}

func (service *Service) DeleteStudent(context context.Context, id string) error {
	if err := service.repo.DeleteStudent(context, id); err != nil {
		return err
	}

	service.logger.Warn("student_deleted", slog.String("student_id", id))
	return nil
}
