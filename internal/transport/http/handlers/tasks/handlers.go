package tasks

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

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
	r.Route("/tasks", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/by_status", h.handleByStatus)
		r.Post("/", h.handleCreate)
		r.Put("/{id}", h.handleUpdate)
		r.Post("/{id}/update_progress", h.handleUpdateProgress)
		r.Get("/{id}/progress_history", h.handleProgressHistory)
		r.Get("/{id}/attachments", h.handleAttachments)
		r.Post("/{id}/upload_file", h.handleUploadFile)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.fix.Tasks())
}

func (h *Handler) handleByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		api.Detail(w, http.StatusBadRequest, "status is required")
		return
	}
	api.WriteJSON(w, http.StatusOK, h.fix.TasksByStatus(core.TaskStatus(status)))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var task core.Task
	if !api.Decode(w, r, &task) {
		return
	}
	if task.Progress == 100 {
		task.Status = core.TaskCompleted
	}
	api.WriteJSON(w, http.StatusCreated, h.fix.CreateTask(task))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var task core.Task
	if !api.Decode(w, r, &task) {
		return
	}
	task.ID = chi.URLParam(r, "id")
	if task.Progress == 100 {
		task.Status = core.TaskCompleted
	}
	updated, ok := h.fix.UpdateTask(task)
	if !ok {
		api.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUser(r.Context())

	var body struct {
		Progress int    `json:"progress"`
		Notes    string `json:"notes"`
	}
	if !api.Decode(w, r, &body) {
		return
	}

	changedAt := time.Now().UTC().Format(time.RFC3339)
	updated, ok := h.fix.UpdateTaskProgress(chi.URLParam(r, "id"), body.Progress, body.Notes, claims.Name, changedAt)
	if !ok {
		api.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleProgressHistory(w http.ResponseWriter, r *http.Request) {
	task, ok := h.fix.TaskByID(chi.URLParam(r, "id"))
	if !ok {
		api.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	history := task.History
	if history == nil {
		history = []core.ProgressEntry{}
	}
	api.WriteJSON(w, http.StatusOK, history)
}

func (h *Handler) handleAttachments(w http.ResponseWriter, r *http.Request) {
	task, ok := h.fix.TaskByID(chi.URLParam(r, "id"))
	if !ok {
		api.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	attachments := task.Attachments
	if attachments == nil {
		attachments = []core.Attachment{}
	}
	api.WriteJSON(w, http.StatusOK, attachments)
}

func (h *Handler) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetUser(r.Context())

	// 10 MB cap, matching the usual multipart memory default.
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		api.Detail(w, http.StatusBadRequest, "file is required")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		api.Detail(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	att := core.Attachment{
		FileName:   header.Filename,
		FileSize:   header.Size,
		UploadedBy: claims.Name,
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	}
	stored, ok := h.fix.AddTaskAttachment(chi.URLParam(r, "id"), att)
	if !ok {
		api.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	api.WriteJSON(w, http.StatusCreated, stored)
}
