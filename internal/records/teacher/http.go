package teacher

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

	router.Get("/", handler.listTeachers)
	router.Get("/overview", handler.getOverview)
	router.Get("/{id}", handler.getTeacher)
	router.Post("/", handler.createTeacher)
	router.Put("/{id}", handler.updateTeacher)
	router.Delete("/{id}", handler.deleteTeacher)

	return router
}

// teacherRequest is the JSON payload for create and update. The hire date
// travels as a calendar date, not a full timestamp.
type teacherRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Status     string  `json:"status"`
	Department string  `json:"department"`
	HireDate   string  `json:"hire_date"`
	Rating     float64 `json:"rating"`
}

func (input *teacherRequest) toEntity() (*Teacher, error) {
	validator := &validate.Validator{}
	validator.Required(FieldHireDate, input.HireDate).Date(FieldHireDate, input.HireDate)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hiredAt, _ := time.Parse("2006-01-02", input.HireDate)
	return &Teacher{
		Name:       input.Name,
		Email:      input.Email,
		Status:     input.Status,
		Department: input.Department,
		HireDate:   hiredAt,
		Rating:     input.Rating,
	}, nil
}

func (handler *Handler) listTeachers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query:  request.URL.Query().Get("q"),
		Status: request.URL.Query().Get("status"),
	}

	teachers, total, err := handler.service.ListTeachers(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, teachers, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getOverview(writer http.ResponseWriter, request *http.Request) {
	overview, err := handler.service.GetOverview(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, overview)
}

func (handler *Handler) getTeacher(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	teacher, err := handler.service.GetTeacher(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, teacher)
}

func (handler *Handler) createTeacher(writer http.ResponseWriter, request *http.Request) {
	var input teacherRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	teacher, err := input.toEntity()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateTeacher(request.Context(), teacher); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, teacher)
}

func (handler *Handler) updateTeacher(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input teacherRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	teacher, err := input.toEntity()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateTeacher(request.Context(), id, teacher); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, teacher)
}

func (handler *Handler) deleteTeacher(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteTeacher(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
