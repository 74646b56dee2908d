package employees

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domainauth "ems/internal/domain/auth"
	"ems/internal/domain/core"
	"ems/internal/fixtures"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
)

type Handler struct {
	fix *fixtures.Store
}

func NewHandler(fix *fixtures.Store) *Handler {
	return &Handler{fix: fix}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.With(middleware.RequirePermission(domainauth.PermEmployeeAdd)).Post("/", h.handleCreate)
		r.Route("/{ref}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.With(middleware.RequirePermission(domainauth.PermEmployeeDelete)).Delete("/", h.handleDelete)
			r.Post("/upload_photo", h.handleUploadPhoto)
			r.Get("/attendance", h.handleAttendance)
			r.Get("/leave_requests", h.handleLeaveRequests)
			r.Get("/tasks", h.handleTasks)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	// ?employee_id= narrows to a single employee, the lookup the login flow
	// uses to enrich its profile.
	if ref := r.URL.Query().Get("employee_id"); ref != "" {
		emp, ok := h.fix.EmployeeByRef(ref)
		if !ok {
			api.WriteJSON(w, http.StatusOK, []core.Employee{})
			return
		}
		api.WriteJSON(w, http.StatusOK, []core.Employee{emp})
		return
	}
	api.WriteJSON(w, http.StatusOK, h.fix.Employees())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.fix.EmployeeByRef(chi.URLParam(r, "ref"))
	if !ok {
		api.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	api.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var emp core.Employee
	if !api.Decode(w, r, &emp) {
		return
	}
	api.WriteJSON(w, http.StatusCreated, h.fix.CreateEmployee(emp))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUser(r.Context())
	ref := chi.URLParam(r, "ref")

	// Full updates need the edit capability; employees may still save their
	// own contact details.
	own := claims.UserID == ref || claims.EmployeeID == ref
	if !domainauth.HasPermission(claims.Role, domainauth.PermEmployeeEdit) {
		if !own || !domainauth.HasPermission(claims.Role, domainauth.PermEmployeeEditOwn) {
			api.Detail(w, http.StatusForbidden, "You do not have permission to perform this action.")
			return
		}
	}

	var emp core.Employee
	if !api.Decode(w, r, &emp) {
		return
	}
	emp.ID = ref
	updated, ok := h.fix.UpdateEmployee(emp)
	if !ok {
		api.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
}

const maxPhotoSize = 5 << 20

func (h *Handler) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUser(r.Context())
	ref := chi.URLParam(r, "ref")

	own := claims.UserID == ref || claims.EmployeeID == ref
	if !own && !domainauth.HasPermission(claims.Role, domainauth.PermEmployeeEdit) {
		api.Detail(w, http.StatusForbidden, "You do not have permission to perform this action.")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		api.ErrorMsg(w, http.StatusBadRequest, "No file provided")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		api.ErrorMsg(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()
	if header.Size > maxPhotoSize {
		api.ErrorMsg(w, http.StatusBadRequest, "File size cannot exceed 5MB")
		return
	}

	updated, ok := h.fix.SetEmployeePhoto(ref, "/media/profile_photos/"+header.Filename)
	if !ok {
		api.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !h.fix.DeleteEmployee(chi.URLParam(r, "ref")) {
		api.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAttendance(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.fix.AttendanceByEmployee(chi.URLParam(r, "ref")))
}

func (h *Handler) handleLeaveRequests(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.fix.LeavesByEmployee(chi.URLParam(r, "ref")))
}

func (h *Handler) handleTasks(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.fix.TasksByEmployee(chi.URLParam(r, "ref")))
}
