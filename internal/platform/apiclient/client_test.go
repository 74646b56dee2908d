package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ems/internal/domain/auth"
	"ems/internal/domain/core"
	"ems/internal/domain/records"
	"ems/internal/domain/session"
	"ems/internal/platform/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	cfg := config.Config{APIBaseURL: ts.URL, APITimeout: 5 * time.Second}
	return New(cfg, func() string { return "tok123" })
}

func TestAttendanceListSendsTokenHeader(t *testing.T) {
	var gotPath, gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "date": "2025-08-20"}})
	}))

	payloads, err := client.Collaborators().Attendance.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotPath != "/api/attendance/" {
		t.Fatalf("got path %q", gotPath)
	}
	if gotAuth != "Token tok123" {
		t.Fatalf("got auth header %q", gotAuth)
	}
	if len(payloads) != 1 || string(payloads[0].ID) != "1" {
		t.Fatalf("numeric id not decoded: %+v", payloads)
	}
}

func TestListByEmployeeQuery(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	}))

	if _, err := client.Collaborators().Attendance.ListByEmployee(context.Background(), "emp007"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotQuery != "employee_id=emp007" {
		t.Fatalf("got query %q", gotQuery)
	}
}

func TestUnauthorizedIsSessionExpired(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Invalid token."}`, http.StatusUnauthorized)
	}))

	_, err := client.Collaborators().Attendance.List(context.Background())
	if !errors.Is(err, records.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestAPIErrorCarriesDetail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
	}))

	_, err := client.Collaborators().Leave.Approve(context.Background(), "99")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Detail != "Not found." {
		t.Fatalf("got %+v", apiErr)
	}
}

func TestUpdateProgressPostsBody(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "5", "progress": 60, "status": "In Progress"})
	}))

	task, err := client.Collaborators().Tasks.UpdateProgress(context.Background(), "5", 60, "more done")
	if err != nil {
		t.Fatalf("update progress: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/tasks/5/update_progress/" {
		t.Fatalf("got %s %s", gotMethod, gotPath)
	}
	if gotBody["progress"] != float64(60) || gotBody["notes"] != "more done" {
		t.Fatalf("got body %v", gotBody)
	}
	if task.Progress != 60 || task.Status != core.TaskInProgress {
		t.Fatalf("got task %+v", task)
	}
}

func TestDeleteNoContent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.Collaborators().Employees.Delete(context.Background(), "7"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestLoginMapsProfile(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login/" {
			t.Errorf("got path %q", r.URL.Path)
		}
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["username"] != "hr001" || creds["password"] != "secret" {
			t.Errorf("got creds %v", creds)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "Login successful",
			"token":   "abc",
			"user": map[string]any{
				"id":         32,
				"username":   "hr001",
				"email":      "hr@company.com",
				"first_name": "Sarah",
				"last_name":  "Johnson",
				"role":       "hr_manager",
			},
		})
	}))

	result, err := client.Login(context.Background(), "hr001", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token != "abc" {
		t.Fatalf("got token %q", result.Token)
	}
	if result.Profile.ID != "32" || result.Profile.FirstName != "Sarah" || result.Profile.Role != auth.RoleHRManager {
		t.Fatalf("got profile %+v", result.Profile)
	}
}

func TestLoginUnauthorizedIsInvalidCredentials(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Invalid credentials"}`, http.StatusUnauthorized)
	}))

	_, err := client.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, session.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutIgnoresRejectedToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Invalid token."}`, http.StatusUnauthorized)
	}))

	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
}

func TestAttendanceByDateQuery(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 3, "date": "2025-08-20"}})
	}))

	payloads, err := client.AttendanceByDate(context.Background(), "2025-08-20")
	if err != nil {
		t.Fatalf("by date: %v", err)
	}
	if gotQuery != "date=2025-08-20" {
		t.Fatalf("got query %q", gotQuery)
	}
	if len(payloads) != 1 {
		t.Fatalf("got %d payloads", len(payloads))
	}
}

func TestTasksByStatusQuery(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 9, "status": "In Progress"}})
	}))

	payloads, err := client.TasksByStatus(context.Background(), core.TaskInProgress)
	if err != nil {
		t.Fatalf("by status: %v", err)
	}
	if gotQuery != "status=In+Progress" {
		t.Fatalf("got query %q", gotQuery)
	}
	if len(payloads) != 1 {
		t.Fatalf("got %d payloads", len(payloads))
	}
}

func TestUploadTaskFileMultipart(t *testing.T) {
	var gotPath, gotFilename, gotContent string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		data, _ := io.ReadAll(file)
		gotContent = string(data)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(core.Attachment{ID: "120", FileName: header.Filename, FileSize: header.Size})
	}))

	att, err := client.UploadTaskFile(context.Background(), "90", "notes.txt", strings.NewReader("standup notes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if gotPath != "/api/tasks/90/upload_file/" {
		t.Fatalf("got path %q", gotPath)
	}
	if gotFilename != "notes.txt" || gotContent != "standup notes" {
		t.Fatalf("got file %q content %q", gotFilename, gotContent)
	}
	if att.ID != "120" {
		t.Fatalf("got attachment %+v", att)
	}
}

func TestCurrentUserMapsProfile(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/user/" {
			t.Errorf("got path %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 33, "username": "tl001", "first_name": "Michael",
			"last_name": "Chen", "role": "team_lead", "department": "Engineering",
		})
	}))

	profile, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if profile.ID != "33" || profile.Role != auth.RoleTeamLead || profile.FirstName != "Michael" {
		t.Fatalf("got profile %+v", profile)
	}
}
