package teacher

import "context"

type Repository interface {
	ListTeachers(context context.Context, f Filter, limit, offset int) ([]*Teacher, int, error)
	GetTeacher(context context.Context, id string) (*Teacher, error)
	CreateTeacher(context context.Context, t *Teacher) error
	UpdateTeacher(context context.Context, t *Teacher) error
	DeleteTeacher(context context.Context, id string) error
	GetOverview(context context.Context) (*Overview, error)
}
