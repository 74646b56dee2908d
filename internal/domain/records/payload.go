package records

import (
	"bytes"
	"encoding/json"
	"strconv"

	"ems/internal/domain/core"
	"ems/internal/domain/session"
	"ems/internal/domain/worktime"
)

// FlexString decodes from a JSON string or number. Backend ids arrive as
// either depending on the endpoint generation.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(data)
	return nil
}

// FlexFloat decodes from a JSON number or numeric string; anything else
// yields zero.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(parsed)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(n)
	return nil
}

// firstNonEmpty returns the first non-empty value, the fixed priority order
// for legacy key spellings.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// AttendancePayload is the wire shape of an attendance record. Check-in and
// check-out have shipped under several key spellings over the backend's
// lifetime; every known one is enumerated and tried in priority order.
type AttendancePayload struct {
	ID           FlexString `json:"id"`
	Date         string     `json:"date"`
	Employee     FlexString `json:"employee"`
	EmployeeName string     `json:"employee_name"`
	Department   string     `json:"department"`
	Hours        FlexFloat  `json:"hours"`
	Status       string     `json:"status"`

	CheckIn      string `json:"check_in"`
	CheckInTime  string `json:"check_in_time"`
	CheckInCamel string `json:"checkIn"`
	CheckInAt    string `json:"check_in_at"`
	InTime       string `json:"in_time"`
	TimeIn       string `json:"time_in"`
	ClockIn      string `json:"clock_in"`
	StartTime    string `json:"start_time"`

	CheckOut      string `json:"check_out"`
	CheckOutTime  string `json:"check_out_time"`
	CheckOutCamel string `json:"checkOut"`
	CheckOutAt    string `json:"check_out_at"`
	OutTime       string `json:"out_time"`
	TimeOut       string `json:"time_out"`
	ClockOut      string `json:"clock_out"`
	EndTime       string `json:"end_time"`
}

func (p AttendancePayload) rawCheckIn() string {
	return firstNonEmpty(p.CheckIn, p.CheckInTime, p.CheckInCamel, p.CheckInAt, p.InTime, p.TimeIn, p.ClockIn, p.StartTime)
}

func (p AttendancePayload) rawCheckOut() string {
	return firstNonEmpty(p.CheckOut, p.CheckOutTime, p.CheckOutCamel, p.CheckOutAt, p.OutTime, p.TimeOut, p.ClockOut, p.EndTime)
}

// Normalize maps the payload to the canonical record. Times are normalized
// to HH:MM; a missing check-in or check-out is back-filled from the hours
// figure; name and department fall back to the requesting identity.
func (p AttendancePayload) Normalize(identity session.Identity) core.AttendanceRecord {
	rec := core.AttendanceRecord{
		ID:           string(p.ID),
		Date:         p.Date,
		EmployeeRef:  string(p.Employee),
		EmployeeName: firstNonEmpty(p.EmployeeName, identity.Name, "Employee"),
		Department:   firstNonEmpty(p.Department, identity.Department, "General"),
		CheckIn:      worktime.NormalizeTime(p.rawCheckIn()),
		CheckOut:     worktime.NormalizeTime(p.rawCheckOut()),
		Hours:        float64(p.Hours),
		Status:       core.AttendanceStatus(p.Status),
		Sync:         core.SyncSynced,
	}

	if rec.Hours > 0 {
		minutes := int(rec.Hours*60 + 0.5)
		switch {
		case rec.CheckIn != "" && rec.CheckOut == "":
			rec.CheckOut = worktime.AddMinutes(rec.CheckIn, minutes)
		case rec.CheckIn == "" && rec.CheckOut != "":
			rec.CheckIn = worktime.AddMinutes(rec.CheckOut, -minutes)
		case rec.CheckIn == "" && rec.CheckOut == "":
			rec.CheckIn = "09:00"
			rec.CheckOut = worktime.AddMinutes(rec.CheckIn, minutes)
		}
	}
	return rec
}

// LeavePayload is the wire shape of a leave request.
type LeavePayload struct {
	ID           FlexString `json:"id"`
	Employee     FlexString `json:"employee"`
	EmployeeName string     `json:"employee_name"`
	Department   string     `json:"department"`
	LeaveType    string     `json:"leave_type"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	Days         FlexFloat  `json:"days"`
	AppliedDate  string     `json:"applied_date"`
	Status       string     `json:"status"`
	Reason       string     `json:"reason"`
	ApprovedBy   FlexString `json:"approved_by"`
}

// leaveTypeAliases maps short leave-type spellings onto the canonical ones.
var leaveTypeAliases = map[string]core.LeaveType{
	"Annual":    core.LeaveAnnual,
	"Sick":      core.LeaveSick,
	"Personal":  core.LeavePersonal,
	"Emergency": core.LeaveEmergency,
}

func normalizeLeaveType(raw string) core.LeaveType {
	if canonical, ok := leaveTypeAliases[raw]; ok {
		return canonical
	}
	return core.LeaveType(raw)
}

func (p LeavePayload) Normalize(identity session.Identity) core.LeaveRequest {
	req := core.LeaveRequest{
		ID:           string(p.ID),
		EmployeeRef:  string(p.Employee),
		EmployeeName: firstNonEmpty(p.EmployeeName, identity.Name, "Employee"),
		Department:   firstNonEmpty(p.Department, identity.Department, "General"),
		LeaveType:    normalizeLeaveType(p.LeaveType),
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Days:         int(p.Days),
		AppliedDate:  p.AppliedDate,
		Status:       core.LeaveStatus(firstNonEmpty(p.Status, string(core.LeavePending))),
		Reason:       p.Reason,
		ApproverRef:  string(p.ApprovedBy),
		Sync:         core.SyncSynced,
	}
	if req.Days == 0 && req.StartDate != "" && req.EndDate != "" {
		req.Days = worktime.InclusiveDays(req.StartDate, req.EndDate)
	}
	return req
}

// TaskPayload is the wire shape of a task.
type TaskPayload struct {
	ID             FlexString           `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	AssignedTo     FlexString           `json:"assigned_to"`
	AssignedToName string               `json:"assigned_to_name"`
	AssignedBy     FlexString           `json:"assigned_by"`
	AssignedByName string               `json:"assigned_by_name"`
	AssignedDate   string               `json:"assigned_date"`
	DueDate        string               `json:"due_date"`
	Priority       string               `json:"priority"`
	Status         string               `json:"status"`
	Progress       FlexFloat            `json:"progress"`
	Department     string               `json:"department"`
	EstimatedHours FlexFloat            `json:"estimated_hours"`
	Attachments    []core.Attachment    `json:"attachments"`
	History        []core.ProgressEntry `json:"progress_history"`
}

func (p TaskPayload) Normalize(identity session.Identity) core.Task {
	task := core.Task{
		ID:             string(p.ID),
		Title:          p.Title,
		Description:    p.Description,
		AssigneeRef:    string(p.AssignedTo),
		AssigneeName:   firstNonEmpty(p.AssignedToName, identity.Name),
		AssignerRef:    string(p.AssignedBy),
		AssignerName:   p.AssignedByName,
		AssignedDate:   p.AssignedDate,
		DueDate:        p.DueDate,
		Priority:       core.TaskPriority(p.Priority),
		Status:         core.TaskStatus(firstNonEmpty(p.Status, string(core.TaskNotStarted))),
		Progress:       clampProgress(int(p.Progress)),
		Department:     firstNonEmpty(p.Department, identity.Department),
		EstimatedHours: float64(p.EstimatedHours),
		Attachments:    p.Attachments,
		History:        p.History,
		Sync:           core.SyncSynced,
	}
	if task.Progress == 100 {
		task.Status = core.TaskCompleted
	}
	return task
}

// EmployeePayload is the wire shape of an employee.
type EmployeePayload struct {
	ID           FlexString `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	Name         string     `json:"name"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Department   string     `json:"department"`
	Designation  string     `json:"designation"`
	JoiningDate  string     `json:"joining_date"`
	DateOfBirth  string     `json:"date_of_birth"`
	Age          FlexFloat  `json:"age"`
	Status       string     `json:"status"`
	Salary       FlexFloat  `json:"salary"`
	ProfilePhoto string     `json:"profile_photo"`
	Manager      FlexString `json:"manager"`
}

func (p EmployeePayload) Normalize() core.Employee {
	name := p.Name
	if name == "" && p.FirstName != "" {
		name = p.FirstName
		if p.LastName != "" {
			name += " " + p.LastName
		}
	}
	return core.Employee{
		ID:           string(p.ID),
		EmployeeID:   p.EmployeeID,
		Name:         name,
		Email:        p.Email,
		Phone:        p.Phone,
		Department:   p.Department,
		Designation:  p.Designation,
		JoiningDate:  p.JoiningDate,
		DateOfBirth:  p.DateOfBirth,
		Age:          int(p.Age),
		Status:       core.EmployeeStatus(firstNonEmpty(p.Status, string(core.EmployeeActive))),
		Salary:       float64(p.Salary),
		ProfilePhoto: p.ProfilePhoto,
		Manager:      string(p.Manager),
		Sync:         core.SyncSynced,
	}
}

func clampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
