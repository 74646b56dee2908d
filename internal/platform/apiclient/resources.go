package apiclient

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"ems/internal/domain/core"
	"ems/internal/domain/records"
	"ems/internal/domain/session"
)

type attendanceAPI struct{ c *Client }

func (a attendanceAPI) List(ctx context.Context) ([]records.AttendancePayload, error) {
	var out []records.AttendancePayload
	if err := a.c.do(ctx, http.MethodGet, "/attendance/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a attendanceAPI) ListByEmployee(ctx context.Context, employeeID string) ([]records.AttendancePayload, error) {
	var out []records.AttendancePayload
	path := "/attendance/by_employee/?employee_id=" + url.QueryEscape(employeeID)
	if err := a.c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AttendanceByDate lists every record for one calendar date.
func (c *Client) AttendanceByDate(ctx context.Context, date string) ([]records.AttendancePayload, error) {
	var out []records.AttendancePayload
	path := "/attendance/by_date/?date=" + url.QueryEscape(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a attendanceAPI) Create(ctx context.Context, rec core.AttendanceRecord) (core.AttendanceRecord, error) {
	var out records.AttendancePayload
	if err := a.c.do(ctx, http.MethodPost, "/attendance/", rec, &out); err != nil {
		return core.AttendanceRecord{}, err
	}
	return out.Normalize(session.Identity{}), nil
}

func (a attendanceAPI) Update(ctx context.Context, rec core.AttendanceRecord) (core.AttendanceRecord, error) {
	var out records.AttendancePayload
	if err := a.c.do(ctx, http.MethodPut, "/attendance/"+url.PathEscape(rec.ID)+"/", rec, &out); err != nil {
		return core.AttendanceRecord{}, err
	}
	return out.Normalize(session.Identity{}), nil
}

func (a attendanceAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, "/attendance/"+url.PathEscape(id)+"/", nil, nil)
}

type leaveAPI struct{ c *Client }

func (l leaveAPI) List(ctx context.Context) ([]records.LeavePayload, error) {
	var out []records.LeavePayload
	if err := l.c.do(ctx, http.MethodGet, "/leave-requests/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (l leaveAPI) ListByEmployee(ctx context.Context, employeeRef string) ([]records.LeavePayload, error) {
	var out []records.LeavePayload
	path := "/employees/" + url.PathEscape(employeeRef) + "/leave_requests/"
	if err := l.c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (l leaveAPI) Create(ctx context.Context, req core.LeaveRequest) (core.LeaveRequest, error) {
	var out records.LeavePayload
	if err := l.c.do(ctx, http.MethodPost, "/leave-requests/", req, &out); err != nil {
		return core.LeaveRequest{}, err
	}
	return out.Normalize(session.Identity{}), nil
}

func (l leaveAPI) Update(ctx context.Context, req core.LeaveRequest) (core.LeaveRequest, error) {
	var out records.LeavePayload
	if err := l.c.do(ctx, http.MethodPut, "/leave-requests/"+url.PathEscape(req.ID)+"/", req, &out); err != nil {
		return core.LeaveRequest{}, err
	}
	return out.Normalize(session.Identity{}), nil
}

func (l leaveAPI) Approve(ctx context.Context, id string) (core.LeaveRequest, error) {
	return l.decide(ctx, id, "approve")
}

func (l leaveAPI) Reject(ctx context.Context, id string) (core.LeaveRequest, error) {
	return l.decide(ctx, id, "reject")
}

func (l leaveAPI) decide(ctx context.Context, id, action string) (core.LeaveRequest, error) {
	var out records.LeavePayload
	path := "/leave-requests/" + url.PathEscape(id) + "/" + action + "/"
	if err := l.c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return core.LeaveRequest{}, err
	}
	return out.Normalize(session.Identity{}), nil
}

type taskAPI struct{ c *Client }

func (t taskAPI) List(ctx context.Context) ([]records.TaskPayload, error) {
	var out []records.TaskPayload
	if err := t.c.do(ctx, http.MethodGet, "/tasks/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t taskAPI) ListByEmployee(ctx context.Context, employeeRef string) ([]records.TaskPayload, error) {
	var out []records.TaskPayload
	path := "/employees/" + url.PathEscape(employeeRef) + "/tasks/"
	if err := t.c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TasksByStatus lists tasks in one workflow state.
func (c *Client) TasksByStatus(ctx context.Context, status core.TaskStatus) ([]records.TaskPayload, error) {
	var out []records.TaskPayload
	path := "/tasks/by_status/?status=" + url.QueryEscape(string(status))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TaskProgressHistory returns the append-only progress audit trail.
func (c *Client) TaskProgressHistory(ctx context.Context, id string) ([]core.ProgressEntry, error) {
	var out []core.ProgressEntry
	path := "/tasks/" + url.PathEscape(id) + "/progress_history/"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TaskAttachments lists upload metadata for a task.
func (c *Client) TaskAttachments(ctx context.Context, id string) ([]core.Attachment, error) {
	var out []core.Attachment
	path := "/tasks/" + url.PathEscape(id) + "/attachments/"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// uploadRequest builds a multipart POST with the file under the "file" form
// field, the shape every upload endpoint expects.
func (c *Client) uploadRequest(ctx context.Context, path, filename string, content io.Reader) (*http.Request, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req, nil
}

// UploadTaskFile sends a file as multipart form data and returns the stored
// attachment metadata.
func (c *Client) UploadTaskFile(ctx context.Context, id, filename string, content io.Reader) (core.Attachment, error) {
	req, err := c.uploadRequest(ctx, "/tasks/"+url.PathEscape(id)+"/upload_file/", filename, content)
	if err != nil {
		return core.Attachment{}, err
	}
	var out core.Attachment
	if err := c.roundTrip(req, &out); err != nil {
		return core.Attachment{}, err
	}
	return out, nil
}

func (t taskAPI) Create(ctx context.Context, task core.Task) (core.Task, error) {
	var out records.TaskPayload
	if err := t.c.do(ctx, http.MethodPost, "/tasks/", task, &out); err != nil {
		return core.Task{}, err
	}
	return out.Normalize(session.Identity{}), nil
}

func (t taskAPI) Update(ctx context.Context, task core.Task) (core.Task, error) {
	var out records.TaskPayload
	if err := t.c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(task.ID)+"/", task, &out); err != nil {
		return core.Task{}, err
	}
	return out.Normalize(session.Identity{}), nil
}

func (t taskAPI) UpdateProgress(ctx context.Context, id string, progress int, notes string) (core.Task, error) {
	body := map[string]any{"progress": progress, "notes": notes}
	var out records.TaskPayload
	path := "/tasks/" + url.PathEscape(id) + "/update_progress/"
	if err := t.c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return core.Task{}, err
	}
	return out.Normalize(session.Identity{}), nil
}

type employeeAPI struct{ c *Client }

func (e employeeAPI) List(ctx context.Context) ([]records.EmployeePayload, error) {
	var out []records.EmployeePayload
	if err := e.c.do(ctx, http.MethodGet, "/employees/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e employeeAPI) Create(ctx context.Context, emp core.Employee) (core.Employee, error) {
	var out records.EmployeePayload
	if err := e.c.do(ctx, http.MethodPost, "/employees/", emp, &out); err != nil {
		return core.Employee{}, err
	}
	return out.Normalize(), nil
}

func (e employeeAPI) Update(ctx context.Context, emp core.Employee) (core.Employee, error) {
	var out records.EmployeePayload
	if err := e.c.do(ctx, http.MethodPut, "/employees/"+url.PathEscape(emp.ID)+"/", emp, &out); err != nil {
		return core.Employee{}, err
	}
	return out.Normalize(), nil
}

// UploadEmployeePhoto replaces the profile photo and returns the updated
// employee record.
func (c *Client) UploadEmployeePhoto(ctx context.Context, id, filename string, content io.Reader) (core.Employee, error) {
	req, err := c.uploadRequest(ctx, "/employees/"+url.PathEscape(id)+"/upload_photo/", filename, content)
	if err != nil {
		return core.Employee{}, err
	}
	var out records.EmployeePayload
	if err := c.roundTrip(req, &out); err != nil {
		return core.Employee{}, err
	}
	return out.Normalize(), nil
}

func (e employeeAPI) Delete(ctx context.Context, id string) error {
	return e.c.do(ctx, http.MethodDelete, "/employees/"+url.PathEscape(id)+"/", nil, nil)
}
