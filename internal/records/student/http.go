package student

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/registra-app/registra/internal/platform/request"
	"github.com/registra-app/registra/internal/platform/respond"
	"github.com/registra-app/registra/internal/platform/validate"
	"github.com/registra-app/registra/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listStudents)
	router.Get("/overview", handler.getOverview)
	router.Get("/{id}", handler.getStudent)
	router.Post("/", handler.createStudent)
	router.Put("/{id}", handler.updateStudent)
	router.Delete("/{id}", handler.deleteStudent)

	return router
}

// studentRequest is the JSON payload for create and update. The enrollment
// date travels as a calendar date, not a full timestamp.
type studentRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Status         string  `json:"status"`
	Program        string  `json:"program"`
	EnrollmentDate string  `json:"enrollment_date"`
	GPA            float64 `json:"gpa"`
}

func (input *studentRequest) toEntity() (*Student, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEnrollmentDate, input.EnrollmentDate).Date(FieldEnrollmentDate, input.EnrollmentDate)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	enrolledAt, _ := time.Parse("2006-01-02", input.EnrollmentDate)
	return &Student{
		Name:           input.Name,
		Email:          input.Email,
		Status:         input.Status,
		Program:        input.Program,
		EnrollmentDate: enrolledAt,
		GPA:            input.GPA,
	}, nil
}

func (handler *Handler) listStudents(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query:  request.URL.Query().Get("q"),
		Status: request.URL.Query().Get("status"),
	}

	students, total, err := handler.service.ListStudents(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, students, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getOverview(writer http.ResponseWriter, request *http.Request) {
	overview, err := handler.service.GetOverview(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, overview)
}

func (handler *Handler) getStudent(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	student, err := handler.service.GetStudent(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, student)
}

func (handler *Handler) createStudent(writer http.ResponseWriter, request *http.Request) {
	var input studentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	student, err := input.toEntity()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateStudent(request.Context(), student); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, student)
}

func (handler *Handler) updateStudent(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input studentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	student, err := input.toEntity()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateStudent(request.Context(), id, student); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, student)
}

func (handler *Handler) deleteStudent(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteStudent(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
