// Package fixtures holds the in-memory seed dataset served by the demo
// backend. Nothing here survives a restart.
package fixtures

import (
	"strconv"
	"sync"

	"ems/internal/auth"
	domainauth "ems/internal/domain/auth"
	"ems/internal/domain/core"
)

// User is a login account. Passwords follow the demo convention of matching
// the username, hashed at seed time.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	FirstName    string
	LastName     string
	Role         domainauth.Role
	EmployeeID   string
	Name         string
	Department   string
	Designation  string
}

// Store is the mutable seed dataset. All methods copy on the way out.
type Store struct {
	mu         sync.Mutex
	users      map[string]User
	employees  []core.Employee
	attendance []core.AttendanceRecord
	leaves     []core.LeaveRequest
	tasks      []core.Task
	nextID     int
}

// New seeds the dataset.
func New() (*Store, error) {
	s := &Store{users: map[string]User{}, nextID: 100}

	seedUsers := []User{
		{ID: "1", Username: "admin", Email: "admin@company.com", FirstName: "System", LastName: "Administrator", Role: domainauth.RoleAdmin, EmployeeID: "admin", Name: "System Administrator", Department: "IT", Designation: "System Admin"},
		{ID: "32", Username: "hr001", Email: "hr.manager@company.com", FirstName: "Sarah", LastName: "Johnson", Role: domainauth.RoleHRManager, EmployeeID: "hr001", Name: "Sarah Johnson", Department: "HR", Designation: "HR Manager"},
		{ID: "33", Username: "tl001", Email: "team.lead@company.com", FirstName: "Michael", LastName: "Chen", Role: domainauth.RoleTeamLead, EmployeeID: "tl001", Name: "Michael Chen", Department: "Engineering", Designation: "Engineering Team Lead"},
		{ID: "21", Username: "emp021", Email: "ravi.kumar@company.com", FirstName: "Ravi", LastName: "Kumar", Role: domainauth.RoleEmployee, EmployeeID: "emp021", Name: "Ravi Kumar", Department: "Engineering", Designation: "Software Engineer"},
		{ID: "22", Username: "emp022", Email: "sneha.agarwal@company.com", FirstName: "Sneha", LastName: "Agarwal", Role: domainauth.RoleEmployee, EmployeeID: "emp022", Name: "Sneha Agarwal", Department: "HR", Designation: "HR Executive"},
	}
	for _, u := range seedUsers {
		hash, err := auth.HashPassword(u.Username)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
		s.users[u.Username] = u
	}

	s.employees = []core.Employee{
		{ID: "21", EmployeeID: "emp021", Name: "Ravi Kumar", Email: "ravi.kumar@company.com", Phone: "+91 9876500021", Department: "Engineering", Designation: "Software Engineer", JoiningDate: "2024-07-01", Status: core.EmployeeActive, Salary: 70000, Manager: "Michael Chen"},
		{ID: "22", EmployeeID: "emp022", Name: "Sneha Agarwal", Email: "sneha.agarwal@company.com", Phone: "+91 9876500022", Department: "HR", Designation: "HR Executive", JoiningDate: "2024-07-05", Status: core.EmployeeActive, Salary: 50000, Manager: "Sarah Johnson"},
		{ID: "27", EmployeeID: "emp027", Name: "Deepak Gupta", Email: "deepak.gupta@company.com", Phone: "+91 9876500027", Department: "Engineering", Designation: "DevOps Engineer", JoiningDate: "2024-08-01", Status: core.EmployeeActive, Salary: 75000, Manager: "Michael Chen"},
		{ID: "30", EmployeeID: "emp030", Name: "Priyanka Sharma", Email: "priyanka.sharma@company.com", Phone: "+91 9876500030", Department: "Finance", Designation: "Financial Analyst", JoiningDate: "2024-08-15", Status: core.EmployeeActive, Salary: 58000},
	}

	s.attendance = []core.AttendanceRecord{
		{ID: "1", Date: "2025-08-06", EmployeeRef: "21", EmployeeName: "Ravi Kumar", Department: "Engineering", CheckIn: "09:00", CheckOut: "17:30", Hours: 8.5, Status: core.AttendancePresent},
		{ID: "2", Date: "2025-08-06", EmployeeRef: "22", EmployeeName: "Sneha Agarwal", Department: "HR", CheckIn: "09:15", CheckOut: "17:45", Hours: 8.5, Status: core.AttendanceLate},
		{ID: "3", Date: "2025-08-07", EmployeeRef: "27", EmployeeName: "Deepak Gupta", Department: "Engineering", CheckIn: "22:00", CheckOut: "06:00", Hours: 8, Status: core.AttendancePresent},
	}

	s.leaves = []core.LeaveRequest{
		{ID: "1", EmployeeRef: "21", EmployeeName: "Ravi Kumar", Department: "Engineering", LeaveType: core.LeaveAnnual, StartDate: "2025-08-25", EndDate: "2025-08-27", Days: 3, AppliedDate: "2025-08-15", Status: core.LeavePending, Reason: "Family function"},
		{ID: "2", EmployeeRef: "22", EmployeeName: "Sneha Agarwal", Department: "HR", LeaveType: core.LeaveSick, StartDate: "2025-08-20", EndDate: "2025-08-21", Days: 2, AppliedDate: "2025-08-18", Status: core.LeaveApproved, Reason: "Medical checkup", ApproverRef: "32"},
		{ID: "3", EmployeeRef: "27", EmployeeName: "Deepak Gupta", Department: "Engineering", LeaveType: core.LeaveEmergency, StartDate: "2025-08-22", EndDate: "2025-08-22", Days: 1, AppliedDate: "2025-08-21", Status: core.LeaveApproved, Reason: "Family emergency", ApproverRef: "33"},
	}

	s.tasks = []core.Task{
		{ID: "1", Title: "Prepare Monthly Attendance Report", Description: "Generate and analyze monthly attendance report for all departments", AssigneeRef: "21", AssigneeName: "Ravi Kumar", AssignerRef: "32", AssignerName: "Sarah Johnson", AssignedDate: "2025-08-01", DueDate: "2025-08-15", Priority: core.PriorityHigh, Status: core.TaskInProgress, Progress: 75, Department: "Engineering", EstimatedHours: 8},
		{ID: "2", Title: "Update Employee Handbook", Description: "Review and update the employee handbook with new policies", AssigneeRef: "22", AssigneeName: "Sneha Agarwal", AssignerRef: "1", AssignerName: "System Administrator", AssignedDate: "2025-08-05", DueDate: "2025-08-20", Priority: core.PriorityMedium, Status: core.TaskNotStarted, Progress: 0, Department: "HR", EstimatedHours: 12},
	}

	return s, nil
}

// Authenticate verifies a username/password pair.
func (s *Store) Authenticate(username, password string) (User, bool) {
	s.mu.Lock()
	user, ok := s.users[username]
	s.mu.Unlock()
	if !ok {
		return User{}, false
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return User{}, false
	}
	return user, true
}

// UserByID looks up an account by its internal id.
func (s *Store) UserByID(id string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func (s *Store) newID() string {
	s.nextID++
	return strconv.Itoa(s.nextID)
}

func (s *Store) Employees() []core.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Employee(nil), s.employees...)
}

// EmployeeByRef matches either the internal id or the employee id.
func (s *Store) EmployeeByRef(ref string) (core.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.employees {
		if e.ID == ref || e.EmployeeID == ref {
			return e, true
		}
	}
	return core.Employee{}, false
}

func (s *Store) CreateEmployee(emp core.Employee) core.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	emp.ID = s.newID()
	if emp.Status == "" {
		emp.Status = core.EmployeeActive
	}
	s.employees = append(s.employees, emp)
	return emp
}

func (s *Store) UpdateEmployee(emp core.Employee) (core.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID == emp.ID {
			s.employees[i] = emp
			return emp, true
		}
	}
	return core.Employee{}, false
}

// SetEmployeePhoto records the stored photo path on the employee.
func (s *Store) SetEmployeePhoto(ref, path string) (core.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs := s.refsFor(ref)
	for i := range s.employees {
		if _, ok := refs[s.employees[i].ID]; ok {
			s.employees[i].ProfilePhoto = path
			return s.employees[i], true
		}
		if _, ok := refs[s.employees[i].EmployeeID]; ok {
			s.employees[i].ProfilePhoto = path
			return s.employees[i], true
		}
	}
	return core.Employee{}, false
}

func (s *Store) DeleteEmployee(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID == id {
			s.employees = append(s.employees[:i], s.employees[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Attendance() []core.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.AttendanceRecord(nil), s.attendance...)
}

// AttendanceByDate returns records whose date matches exactly.
func (s *Store) AttendanceByDate(date string) []core.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.AttendanceRecord
	for _, rec := range s.attendance {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out
}

// AttendanceByEmployee matches the record's employee reference against the
// internal id, the employee id, or a username resolving to either.
func (s *Store) AttendanceByEmployee(ref string) []core.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs := s.refsFor(ref)
	var out []core.AttendanceRecord
	for _, rec := range s.attendance {
		if _, ok := refs[rec.EmployeeRef]; ok {
			out = append(out, rec)
		}
	}
	return out
}

func (s *Store) CreateAttendance(rec core.AttendanceRecord) core.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.newID()
	s.attendance = append(s.attendance, rec)
	return rec
}

func (s *Store) UpdateAttendance(rec core.AttendanceRecord) (core.AttendanceRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.attendance {
		if s.attendance[i].ID == rec.ID {
			s.attendance[i] = rec
			return rec, true
		}
	}
	return core.AttendanceRecord{}, false
}

func (s *Store) DeleteAttendance(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.attendance {
		if s.attendance[i].ID == id {
			s.attendance = append(s.attendance[:i], s.attendance[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Leaves() []core.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.LeaveRequest(nil), s.leaves...)
}

func (s *Store) LeavesByEmployee(ref string) []core.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs := s.refsFor(ref)
	var out []core.LeaveRequest
	for _, req := range s.leaves {
		if _, ok := refs[req.EmployeeRef]; ok {
			out = append(out, req)
		}
	}
	return out
}

func (s *Store) CreateLeave(req core.LeaveRequest) core.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	req.ID = s.newID()
	if req.Status == "" {
		req.Status = core.LeavePending
	}
	s.leaves = append(s.leaves, req)
	return req
}

func (s *Store) UpdateLeave(req core.LeaveRequest) (core.LeaveRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leaves {
		if s.leaves[i].ID == req.ID {
			s.leaves[i] = req
			return req, true
		}
	}
	return core.LeaveRequest{}, false
}

// DecideLeave approves or rejects a pending request. Decided requests are
// immutable; the second return reports whether the request exists, the third
// whether it was still pending.
func (s *Store) DecideLeave(id string, status core.LeaveStatus, approverID string) (core.LeaveRequest, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leaves {
		if s.leaves[i].ID != id {
			continue
		}
		if s.leaves[i].Status != core.LeavePending {
			return s.leaves[i], true, false
		}
		s.leaves[i].Status = status
		s.leaves[i].ApproverRef = approverID
		return s.leaves[i], true, true
	}
	return core.LeaveRequest{}, false, false
}

func (s *Store) Tasks() []core.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Task(nil), s.tasks...)
}

func (s *Store) TasksByEmployee(ref string) []core.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs := s.refsFor(ref)
	var out []core.Task
	for _, task := range s.tasks {
		if _, ok := refs[task.AssigneeRef]; ok {
			out = append(out, task)
		}
	}
	return out
}

func (s *Store) TasksByStatus(status core.TaskStatus) []core.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Task
	for _, task := range s.tasks {
		if task.Status == status {
			out = append(out, task)
		}
	}
	return out
}

func (s *Store) TaskByID(id string) (core.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, task := range s.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return core.Task{}, false
}

// AddTaskAttachment records upload metadata on the task. The file bytes are
// not kept; the store is a fixture, not a blob store.
func (s *Store) AddTaskAttachment(id string, att core.Attachment) (core.Attachment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			att.ID = s.newID()
			s.tasks[i].Attachments = append(s.tasks[i].Attachments, att)
			return att, true
		}
	}
	return core.Attachment{}, false
}

func (s *Store) CreateTask(task core.Task) core.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	task.ID = s.newID()
	if task.Status == "" {
		task.Status = core.TaskNotStarted
	}
	s.tasks = append(s.tasks, task)
	return task
}

func (s *Store) UpdateTask(task core.Task) (core.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			return task, true
		}
	}
	return core.Task{}, false
}

// UpdateTaskProgress sets progress, appends an audit entry, and keeps status
// consistent with the new figure.
func (s *Store) UpdateTaskProgress(id string, progress int, notes, changedBy, changedAt string) (core.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}
		s.tasks[i].Progress = progress
		if progress == 100 {
			s.tasks[i].Status = core.TaskCompleted
		} else if progress > 0 && s.tasks[i].Status == core.TaskNotStarted {
			s.tasks[i].Status = core.TaskInProgress
		}
		s.tasks[i].History = append(s.tasks[i].History, core.ProgressEntry{
			ID:        s.newID(),
			Progress:  progress,
			Notes:     notes,
			ChangedBy: changedBy,
			ChangedAt: changedAt,
		})
		return s.tasks[i], true
	}
	return core.Task{}, false
}

// refsFor expands a reference into the set of equivalent record references.
// Callers hold the lock.
func (s *Store) refsFor(ref string) map[string]struct{} {
	refs := map[string]struct{}{ref: {}}
	for _, e := range s.employees {
		if e.ID == ref || e.EmployeeID == ref {
			refs[e.ID] = struct{}{}
			refs[e.EmployeeID] = struct{}{}
		}
	}
	for _, u := range s.users {
		if u.ID == ref || u.Username == ref || u.EmployeeID == ref {
			refs[u.ID] = struct{}{}
			refs[u.EmployeeID] = struct{}{}
		}
	}
	return refs
}
