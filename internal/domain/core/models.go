package core

// SyncState tags a record with its relationship to the backend. Records
// ingested from the backend are synced; fallback fixtures are pending;
// optimistic writes that failed to persist are failed.
type SyncState string

const (
	SyncSynced  SyncState = "synced"
	SyncPending SyncState = "pending"
	SyncFailed  SyncState = "failed"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceHalfDay AttendanceStatus = "Half Day"
)

type AttendanceRecord struct {
	ID           string           `json:"id"`
	Date         string           `json:"date"`
	EmployeeRef  string           `json:"employee"`
	EmployeeName string           `json:"employee_name"`
	Department   string           `json:"department"`
	CheckIn      string           `json:"check_in"`
	CheckOut     string           `json:"check_out"`
	Hours        float64          `json:"hours"`
	Status       AttendanceStatus `json:"status"`

	Sync SyncState `json:"-"`
}

type LeaveType string

const (
	LeaveAnnual    LeaveType = "Annual Leave"
	LeaveSick      LeaveType = "Sick Leave"
	LeavePersonal  LeaveType = "Personal Leave"
	LeaveEmergency LeaveType = "Emergency Leave"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
)

type LeaveRequest struct {
	ID           string      `json:"id"`
	EmployeeRef  string      `json:"employee"`
	EmployeeName string      `json:"employee_name"`
	Department   string      `json:"department"`
	LeaveType    LeaveType   `json:"leave_type"`
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	Days         int         `json:"days"`
	AppliedDate  string      `json:"applied_date"`
	Status       LeaveStatus `json:"status"`
	Reason       string      `json:"reason,omitempty"`
	ApproverRef  string      `json:"approved_by,omitempty"`

	Sync SyncState `json:"-"`
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "Not Started"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
	TaskOnHold     TaskStatus = "On Hold"
)

// Attachment is file metadata for a task upload. The list on a task is
// append-only.
type Attachment struct {
	ID         string `json:"id"`
	FileName   string `json:"file_name"`
	FileSize   int64  `json:"file_size"`
	UploadedBy string `json:"uploaded_by"`
	UploadedAt string `json:"uploaded_at"`
}

// ProgressEntry is one progress-change audit record. Append-only.
type ProgressEntry struct {
	ID        string `json:"id"`
	Progress  int    `json:"progress"`
	Notes     string `json:"notes,omitempty"`
	ChangedBy string `json:"changed_by"`
	ChangedAt string `json:"changed_at"`
}

type Task struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	AssigneeRef    string          `json:"assigned_to"`
	AssigneeName   string          `json:"assigned_to_name"`
	AssignerRef    string          `json:"assigned_by"`
	AssignerName   string          `json:"assigned_by_name"`
	AssignedDate   string          `json:"assigned_date"`
	DueDate        string          `json:"due_date"`
	Priority       TaskPriority    `json:"priority"`
	Status         TaskStatus      `json:"status"`
	Progress       int             `json:"progress"`
	Department     string          `json:"department"`
	EstimatedHours float64         `json:"estimated_hours,omitempty"`
	Attachments    []Attachment    `json:"attachments,omitempty"`
	History        []ProgressEntry `json:"progress_history,omitempty"`

	Sync SyncState `json:"-"`
}

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "Active"
	EmployeeInactive EmployeeStatus = "Inactive"
)

type Employee struct {
	ID           string         `json:"id"`
	EmployeeID   string         `json:"employee_id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Department   string         `json:"department"`
	Designation  string         `json:"designation"`
	JoiningDate  string         `json:"joining_date"`
	DateOfBirth  string         `json:"date_of_birth,omitempty"`
	Age          int            `json:"age,omitempty"`
	Status       EmployeeStatus `json:"status"`
	Salary       float64        `json:"salary"`
	ProfilePhoto string         `json:"profile_photo,omitempty"`
	Manager      string         `json:"manager,omitempty"`

	Sync SyncState `json:"-"`
}
