package teacher

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

func (service *Service) ListTeachers(context context.Context, filter Filter, limit, offset int) ([]*Teacher, int, error) {
	if filter.Status != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldStatus, filter.Status, Statuses...)
		if err := validator.Err(); err != nil {
			return nil, 0, err
		}
	}
	return service.repo.ListTeachers(context, filter, limit, offset)
}

func (service *Service) GetTeacher(context context.Context, id string) (*Teacher, error) {
	return service.repo.GetTeacher(context, id)
}

func (service *Service) GetOverview(context context.Context) (*Overview, error) {
	return service.repo.GetOverview(context)
}

func validateTeacher(t *Teacher) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, t.Name).MaxLen(FieldName, t.Name, 200)
	validator.Required(FieldEmail, t.Email).Email(FieldEmail, t.Email)
	validator.OneOf(FieldStatus, t.Status, Statuses...)
	validator.MaxLen(FieldDepartment, t.Department, 200)
	validator.RangeFloat(FieldRating, t.Rating, 0.0, 5.0)
	validator.Custom(FieldHireDate, t.HireDate.IsZero(), "Hire date is required")

	return validator.Err()
}

func (service *Service) CreateTeacher(context context.Context, t *Teacher) error {
	if t.Status == "" {
		t.Status = StatusActive
	}

	if err := validateTeacher(t); err != nil {
		return err
	}

	t.ID = uuid.New()
	if err := service.repo.CreateTeacher(context, t); err != nil {
		return err
	}

	service.logger.Info("teacher_created", slog.String("teacher_id", t.ID))
	return nil
}

func (service *Service) UpdateTeacher(context context.Context, id string, t *Teacher) error {
	t.ID = id

	if err := validateTeacher(t); err != nil {
		return err
	}

	if err := service.repo.UpdateTeacher(context, t); err != nil {
		return err
	}

	service.logger.Info("teacher_updated", slog.String("teacher_id", id))
	return nil
}

func (service *Service) DeleteTeacher(context context.Context, id string) error {
	if err := service.repo.DeleteTeacher(context, id); err != nil {
		return err
	}

	service.logger.Warn("teacher_deleted", slog.String("teacher_id", id))
	return nil
}
