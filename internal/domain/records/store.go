package records

import (
	"context"
	"errors"
	"sync"

	"ems/internal/domain/core"
	"ems/internal/domain/session"
)

var (
	// ErrNotAuthenticated is returned when an operation needs an identity and
	// none is established.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired marks a collaborator rejection of the session token.
	// It is the only fatal failure: callers must force logout. Collaborator
	// implementations return errors matching this on a 401.
	ErrSessionExpired = errors.New("session expired")

	// ErrPermissionDenied is returned when the current role lacks the
	// capability an operation requires.
	ErrPermissionDenied = errors.New("permission denied")
)

// AttendanceAPI is the attendance resource family of the REST collaborator.
type AttendanceAPI interface {
	List(ctx context.Context) ([]AttendancePayload, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]AttendancePayload, error)
	Create(ctx context.Context, rec core.AttendanceRecord) (core.AttendanceRecord, error)
	Update(ctx context.Context, rec core.AttendanceRecord) (core.AttendanceRecord, error)
	Delete(ctx context.Context, id string) error
}

// LeaveAPI is the leave-request resource family.
type LeaveAPI interface {
	List(ctx context.Context) ([]LeavePayload, error)
	ListByEmployee(ctx context.Context, employeeRef string) ([]LeavePayload, error)
	Create(ctx context.Context, req core.LeaveRequest) (core.LeaveRequest, error)
	Update(ctx context.Context, req core.LeaveRequest) (core.LeaveRequest, error)
	Approve(ctx context.Context, id string) (core.LeaveRequest, error)
	Reject(ctx context.Context, id string) (core.LeaveRequest, error)
}

// TaskAPI is the task resource family.
type TaskAPI interface {
	List(ctx context.Context) ([]TaskPayload, error)
	ListByEmployee(ctx context.Context, employeeRef string) ([]TaskPayload, error)
	Create(ctx context.Context, task core.Task) (core.Task, error)
	Update(ctx context.Context, task core.Task) (core.Task, error)
	UpdateProgress(ctx context.Context, id string, progress int, notes string) (core.Task, error)
}

// EmployeeAPI is the employee resource family.
type EmployeeAPI interface {
	List(ctx context.Context) ([]EmployeePayload, error)
	Create(ctx context.Context, emp core.Employee) (core.Employee, error)
	Update(ctx context.Context, emp core.Employee) (core.Employee, error)
	Delete(ctx context.Context, id string) error
}

// Collaborators bundles the REST resource families the store fetches through.
type Collaborators struct {
	Attendance AttendanceAPI
	Leave      LeaveAPI
	Tasks      TaskAPI
	Employees  EmployeeAPI
}

// IdentitySource supplies the identity mutations are attributed to.
// *session.Store satisfies it.
type IdentitySource interface {
	Current() (session.Identity, bool)
}

// Store is the in-memory, reducer-style store of domain records for the
// current session. The backend remains the source of truth; the store
// guarantees nothing beyond last write wins.
type Store struct {
	mu      sync.Mutex
	session IdentitySource
	api     Collaborators

	attendance []core.AttendanceRecord
	leaves     []core.LeaveRequest
	tasks      []core.Task
	employees  []core.Employee
}

func NewStore(identity IdentitySource, api Collaborators) *Store {
	return &Store{session: identity, api: api}
}

// SetAllAttendance replaces the attendance slice wholesale.
func (s *Store) SetAllAttendance(recs []core.AttendanceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendance = append([]core.AttendanceRecord(nil), recs...)
}

// AddAttendance prepends, keeping most-recent-first display order.
func (s *Store) AddAttendance(rec core.AttendanceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendance = append([]core.AttendanceRecord{rec}, s.attendance...)
}

// UpdateAttendance replaces the record with the same id. Unknown ids are a
// no-op: never an insert, never an error.
func (s *Store) UpdateAttendance(rec core.AttendanceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.attendance {
		if s.attendance[i].ID == rec.ID {
			s.attendance[i] = rec
			return
		}
	}
}

func (s *Store) DeleteAttendance(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.attendance {
		if s.attendance[i].ID == id {
			s.attendance = append(s.attendance[:i], s.attendance[i+1:]...)
			return
		}
	}
}

func (s *Store) Attendance() []core.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.AttendanceRecord(nil), s.attendance...)
}

func (s *Store) SetAllLeaves(reqs []core.LeaveRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves = append([]core.LeaveRequest(nil), reqs...)
}

func (s *Store) AddLeave(req core.LeaveRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves = append([]core.LeaveRequest{req}, s.leaves...)
}

func (s *Store) UpdateLeave(req core.LeaveRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leaves {
		if s.leaves[i].ID == req.ID {
			s.leaves[i] = req
			return
		}
	}
}

func (s *Store) Leaves() []core.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.LeaveRequest(nil), s.leaves...)
}

func (s *Store) SetAllTasks(tasks []core.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]core.Task(nil), tasks...)
}

func (s *Store) AddTask(task core.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]core.Task{task}, s.tasks...)
}

func (s *Store) UpdateTask(task core.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
}

func (s *Store) Tasks() []core.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Task(nil), s.tasks...)
}

func (s *Store) SetAllEmployees(emps []core.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = append([]core.Employee(nil), emps...)
}

func (s *Store) AddEmployee(emp core.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = append([]core.Employee{emp}, s.employees...)
}

func (s *Store) UpdateEmployee(emp core.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID == emp.ID {
			s.employees[i] = emp
			return
		}
	}
}

func (s *Store) DeleteEmployee(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID == id {
			s.employees = append(s.employees[:i], s.employees[i+1:]...)
			return
		}
	}
}

func (s *Store) Employees() []core.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Employee(nil), s.employees...)
}

// findTask returns a copy of the task with the given id.
func (s *Store) findTask(id string) (core.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return s.tasks[i], true
		}
	}
	return core.Task{}, false
}

// findLeave returns a copy of the leave request with the given id.
func (s *Store) findLeave(id string) (core.LeaveRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leaves {
		if s.leaves[i].ID == id {
			return s.leaves[i], true
		}
	}
	return core.LeaveRequest{}, false
}

// findEmployee returns a copy of the employee with the given internal id.
func (s *Store) findEmployee(id string) (core.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID == id {
			return s.employees[i], true
		}
	}
	return core.Employee{}, false
}

func (s *Store) identity() (session.Identity, error) {
	identity, ok := s.session.Current()
	if !ok {
		return session.Identity{}, ErrNotAuthenticated
	}
	return identity, nil
}
