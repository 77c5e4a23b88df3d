package teacher

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registra-app/registra/internal/platform/apperr"
)

type memoryRepository struct {
	teachers map[string]*Teacher
	order    []string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{teachers: map[string]*Teacher{}}
}

func (repository *memoryRepository) ListTeachers(_ context.Context, f Filter, limit, offset int) ([]*Teacher, int, error) {
	matched := []*Teacher{}
	for _, id := range repository.order {
		t, ok := repository.teachers[id]
		if !ok {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		matched = append(matched, t)
	}

	total := len(matched)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (repository *memoryRepository) GetTeacher(_ context.Context, id string) (*Teacher, error) {
	t, ok := repository.teachers[id]
	if !ok {
		return nil, apperr.NotFound("Teacher")
	}
	return t, nil
}

func (repository *memoryRepository) CreateTeacher(_ context.Context, t *Teacher) error {
	repository.teachers[t.ID] = t
	repository.order = append(repository.order, t.ID)
	return nil
}

func (repository *memoryRepository) UpdateTeacher(_ context.Context, t *Teacher) error {
	if _, ok := repository.teachers[t.ID]; !ok {
		return apperr.NotFound("Teacher")
	}
	repository.teachers[t.ID] = t
	return nil
}

func (repository *memoryRepository) DeleteTeacher(_ context.Context, id string) error {
	if _, ok := repository.teachers[id]; !ok {
		return apperr.NotFound("Teacher")
	}
	delete(repository.teachers, id)
	return nil
}

func (repository *memoryRepository) GetOverview(_ context.Context) (*Overview, error) {
	overview := &Overview{}
	var ratingSum float64
	for _, t := range repository.teachers {
		overview.Total++
		ratingSum += t.Rating
		switch t.Status {
		case StatusActive:
			overview.Active++
		case StatusInactive:
			overview.Inactive++
		case StatusOnLeave:
			overview.OnLeave++
		}
	}
	if overview.Total > 0 {
		overview.AverageRating = ratingSum / float64(overview.Total)
	}
	return overview, nil
}

func newTestService() (*Service, *memoryRepository) {
	repo := newMemoryRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

func validTeacher() *Teacher {
	return &Teacher{
		Name:       "Richard Feynman",
		Email:      "feynman@example.edu",
		Status:     StatusActive,
		Department: "Physics",
		HireDate:   time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
		Rating:     4.9,
	}
}

func TestService_CreateTeacher(t *testing.T) {
	service, repo := newTestService()

	faculty := validTeacher()
	require.NoError(t, service.CreateTeacher(context.Background(), faculty))
	assert.NotEmpty(t, faculty.ID)
	assert.Contains(t, repo.teachers, faculty.ID)
}

func TestService_CreateTeacher_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Teacher)
	}{
		{"missing_name", func(f *Teacher) { f.Name = "" }},
		{"bad_email", func(f *Teacher) { f.Email = "nope" }},
		{"unknown_status", func(f *Teacher) { f.Status = "sabbatical" }},
		{"rating_above_scale", func(f *Teacher) { f.Rating = 5.5 }},
		{"zero_hire_date", func(f *Teacher) { f.HireDate = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService()

			faculty := validTeacher()
			tt.mutate(faculty)

			err := service.CreateTeacher(context.Background(), faculty)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
			assert.Empty(t, repo.teachers)
		})
	}
}

func TestService_ListTeachers_StatusFilter(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	for _, status := range []string{StatusActive, StatusOnLeave, StatusOnLeave} {
		faculty := validTeacher()
		faculty.Status = status
		require.NoError(t, service.CreateTeacher(ctx, faculty))
	}

	onLeave, total, err := service.ListTeachers(ctx, Filter{Status: StatusOnLeave}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, onLeave, 2)

	_, _, err = service.ListTeachers(ctx, Filter{Status: "retired"}, 10, 0)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_UpdateTeacher(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	faculty := validTeacher()
	require.NoError(t, service.CreateTeacher(ctx, faculty))

	updated := validTeacher()
	updated.Status = StatusOnLeave
	require.NoError(t, service.UpdateTeacher(ctx, faculty.ID, updated))
	assert.Equal(t, StatusOnLeave, repo.teachers[faculty.ID].Status)

	err := service.UpdateTeacher(ctx, "missing-id", validTeacher())
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_GetOverview(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	ratings := map[string]float64{StatusActive: 5.0, StatusOnLeave: 4.0}
	for status, rating := range ratings {
		faculty := validTeacher()
		faculty.Status = status
		faculty.Rating = rating
		require.NoError(t, service.CreateTeacher(ctx, faculty))
	}

	overview, err := service.GetOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, overview.Total)
	assert.Equal(t, 1, overview.Active)
	assert.Equal(t, 1, overview.OnLeave)
	assert.InDelta(t, 4.5, overview.AverageRating, 0.001)
}
