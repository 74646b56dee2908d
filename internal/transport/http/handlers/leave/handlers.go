package leave

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
	r.Route("/leave-requests", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/pending", h.handlePending)
		r.Post("/", h.handleCreate)
		r.Put("/{id}", h.handleUpdate)
		r.Post("/{id}/approve", h.handleDecide(core.LeaveApproved))
		r.Post("/{id}/reject", h.handleDecide(core.LeaveRejected))
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.fix.Leaves())
}

func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request) {
	var pending []core.LeaveRequest
	for _, req := range h.fix.Leaves() {
		if req.Status == core.LeavePending {
			pending = append(pending, req)
		}
	}
	api.WriteJSON(w, http.StatusOK, pending)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req core.LeaveRequest
	if !api.Decode(w, r, &req) {
		return
	}
	if req.StartDate != "" && req.EndDate != "" {
		if start, end := worktime.ParseDate(req.StartDate), worktime.ParseDate(req.EndDate); !start.IsZero() && !end.IsZero() && start.After(end) {
			api.Detail(w, http.StatusBadRequest, worktime.MsgStartAfterEnd)
			return
		}
		if req.Days == 0 {
			req.Days = worktime.InclusiveDays(req.StartDate, req.EndDate)
		}
	}
	req.Status = core.LeavePending
	api.WriteJSON(w, http.StatusCreated, h.fix.CreateLeave(req))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req core.LeaveRequest
	if !api.Decode(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")
	updated, ok := h.fix.UpdateLeave(req)
	if !ok {
		api.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDecide(status core.LeaveStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUser(r.Context())
		checker := domainauth.NewChecker(claims.Role)
		if !checker.HasAny(domainauth.PermLeaveFullControl, domainauth.PermLeaveApproveReject, domainauth.PermLeaveApproveTeam) {
			api.Detail(w, http.StatusForbidden, "You do not have permission to perform this action.")
			return
		}

		decided, found, wasPending := h.fix.DecideLeave(chi.URLParam(r, "id"), status, claims.UserID)
		if !found {
			api.Detail(w, http.StatusNotFound, "Not found.")
			return
		}
		if !wasPending {
			api.Detail(w, http.StatusConflict, "Leave request has already been decided.")
			return
		}
		api.WriteJSON(w, http.StatusOK, decided)
	}
}
