package student

import "context"

type Repository interface {
	ListStudents(context context.Context, f Filter, limit, offset int) ([]*Student, int, error)
	GetStudent(context context.Context, id string) (*Student, error)
	CreateStudent(context context.Context, s *Student) error
	UpdateStudent(context context.Context, s *Student) error
	DeleteStudent(context context.Context, id string) error
	GetOverview(context context.Context) (*Overview, error)
}
