package attendance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domainauth "ems/internal/domain/auth"
	"ems/internal/domain/core"
	"ems/internal/domain/worktime"
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
	r.Route("/attendance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/by_employee", h.handleByEmployee)
		r.Get("/by_date", h.handleByDate)
		r.Post("/", h.handleCreate)
		r.Put("/{id}", h.handleUpdate)
		r.With(middleware.RequirePermission(domainauth.PermAttendanceDelete)).Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.fix.Attendance())
}

func (h *Handler) handleByEmployee(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("employee_id")
	if ref == "" {
		api.Detail(w, http.StatusBadRequest, "employee_id is required")
		return
	}
	api.WriteJSON(w, http.StatusOK, h.fix.AttendanceByEmployee(ref))
}

func (h *Handler) handleByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		api.Detail(w, http.StatusBadRequest, "date is required")
		return
	}
	api.WriteJSON(w, http.StatusOK, h.fix.AttendanceByDate(date))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var rec core.AttendanceRecord
	if !api.Decode(w, r, &rec) {
		return
	}
	if msg := worktime.ValidateTimeRange(rec.CheckIn, rec.CheckOut); msg != "" {
		api.Detail(w, http.StatusBadRequest, msg)
		return
	}
	if rec.CheckIn != "" && rec.CheckOut != "" {
		rec.Hours = worktime.ElapsedHours(rec.CheckIn, rec.CheckOut)
	}
	api.WriteJSON(w, http.StatusCreated, h.fix.CreateAttendance(rec))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var rec core.AttendanceRecord
	if !api.Decode(w, r, &rec) {
		return
	}
	rec.ID = chi.URLParam(r, "id")
	if msg := worktime.ValidateTimeRange(rec.CheckIn, rec.CheckOut); msg != "" {
		api.Detail(w, http.StatusBadRequest, msg)
		return
	}
	updated, ok := h.fix.UpdateAttendance(rec)
	if !ok {
		api.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !h.fix.DeleteAttendance(chi.URLParam(r, "id")) {
		api.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
