package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ems/internal/domain/auth"
	"ems/internal/domain/core"
	"ems/internal/domain/worktime"
)

// ValidationError is a user-facing form message. It blocks the specific
// submit action and mutates nothing.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// ErrAlreadyDecided rejects a status transition on a leave request that is
// no longer pending; approvals are one-way.
var ErrAlreadyDecided = errors.New("leave request already decided")

// MarkAttendance creates an attendance record: self-service for roles with
// the mark-own capability, any employee for roles with the edit capability.
// Persist first; on backend failure the locally constructed record is kept
// with a failed sync tag and the error is surfaced alongside it.
func (s *Store) MarkAttendance(ctx context.Context, rec core.AttendanceRecord) (core.AttendanceRecord, error) {
	identity, err := s.identity()
	if err != nil {
		return core.AttendanceRecord{}, err
	}
	checker := auth.NewChecker(identity.Role)

	if rec.EmployeeRef == "" {
		rec.EmployeeRef = identity.ID
	}
	own := ownsRecord(identity, rec.EmployeeRef)
	if own {
		if !checker.HasAny(auth.PermAttendanceMarkOwn, auth.PermAttendanceEdit) {
			return core.AttendanceRecord{}, ErrPermissionDenied
		}
	} else if !checker.Has(auth.PermAttendanceEdit) {
		return core.AttendanceRecord{}, ErrPermissionDenied
	}

	if msg := worktime.ValidateTimeRange(rec.CheckIn, rec.CheckOut); msg != "" {
		return core.AttendanceRecord{}, ValidationError(msg)
	}

	if rec.EmployeeName == "" {
		rec.EmployeeName = identity.Name
	}
	if rec.Department == "" {
		rec.Department = identity.Department
	}
	if rec.CheckIn != "" && rec.CheckOut != "" {
		rec.Hours = worktime.ElapsedHours(rec.CheckIn, rec.CheckOut)
	}

	created, err := s.api.Attendance.Create(ctx, rec)
	if errors.Is(err, ErrSessionExpired) {
		return core.AttendanceRecord{}, err
	}
	if err != nil {
		rec.ID = localID()
		rec.Sync = core.SyncFailed
		s.AddAttendance(rec)
		return rec, fmt.Errorf("attendance not saved to backend: %w", err)
	}

	created.Sync = core.SyncSynced
	s.AddAttendance(created)
	return created, nil
}

// EditAttendance updates an existing record: owners with the mark-own
// capability or any holder of the edit capability.
func (s *Store) EditAttendance(ctx context.Context, rec core.AttendanceRecord) (core.AttendanceRecord, error) {
	identity, err := s.identity()
	if err != nil {
		return core.AttendanceRecord{}, err
	}
	checker := auth.NewChecker(identity.Role)
	if !checker.Has(auth.PermAttendanceEdit) {
		if !(ownsRecord(identity, rec.EmployeeRef) && checker.Has(auth.PermAttendanceMarkOwn)) {
			return core.AttendanceRecord{}, ErrPermissionDenied
		}
	}

	if msg := worktime.ValidateTimeRange(rec.CheckIn, rec.CheckOut); msg != "" {
		return core.AttendanceRecord{}, ValidationError(msg)
	}
	if rec.CheckIn != "" && rec.CheckOut != "" {
		rec.Hours = worktime.ElapsedHours(rec.CheckIn, rec.CheckOut)
	}

	updated, err := s.api.Attendance.Update(ctx, rec)
	if errors.Is(err, ErrSessionExpired) {
		return core.AttendanceRecord{}, err
	}
	if err != nil {
		rec.Sync = core.SyncFailed
		s.UpdateAttendance(rec)
		return rec, fmt.Errorf("attendance not saved to backend: %w", err)
	}

	updated.Sync = core.SyncSynced
	s.UpdateAttendance(updated)
	return updated, nil
}

// RemoveAttendance hard-deletes a record. Not available to the employee
// self-service flow.
func (s *Store) RemoveAttendance(ctx context.Context, id string) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}
	if !auth.HasPermission(identity.Role, auth.PermAttendanceDelete) {
		return ErrPermissionDenied
	}

	err = s.api.Attendance.Delete(ctx, id)
	if errors.Is(err, ErrSessionExpired) {
		return err
	}
	s.DeleteAttendance(id)
	if err != nil {
		return fmt.Errorf("attendance not deleted on backend: %w", err)
	}
	return nil
}

// ApplyLeave submits a leave request for the current identity (or on behalf
// of an employee, for roles with full control).
func (s *Store) ApplyLeave(ctx context.Context, req core.LeaveRequest) (core.LeaveRequest, error) {
	identity, err := s.identity()
	if err != nil {
		return core.LeaveRequest{}, err
	}
	checker := auth.NewChecker(identity.Role)

	if req.EmployeeRef == "" {
		req.EmployeeRef = identity.ID
	}
	if ownsRecord(identity, req.EmployeeRef) {
		if !checker.HasAny(auth.PermLeaveApply, auth.PermLeaveFullControl) {
			return core.LeaveRequest{}, ErrPermissionDenied
		}
	} else if !checker.HasAny(auth.PermLeaveFullControl, auth.PermLeaveApproveReject) {
		return core.LeaveRequest{}, ErrPermissionDenied
	}

	if msg := worktime.ValidateDateRange(req.StartDate, req.EndDate, time.Now()); msg != "" {
		return core.LeaveRequest{}, ValidationError(msg)
	}

	if req.EmployeeName == "" {
		req.EmployeeName = identity.Name
	}
	if req.Department == "" {
		req.Department = identity.Department
	}
	req.Days = worktime.InclusiveDays(req.StartDate, req.EndDate)
	req.AppliedDate = time.Now().Format(worktime.DateLayout)
	req.Status = core.LeavePending

	created, err := s.api.Leave.Create(ctx, req)
	if errors.Is(err, ErrSessionExpired) {
		return core.LeaveRequest{}, err
	}
	if err != nil {
		req.ID = localID()
		req.Sync = core.SyncFailed
		s.AddLeave(req)
		return req, fmt.Errorf("leave request not saved to backend: %w", err)
	}

	created.Sync = core.SyncSynced
	s.AddLeave(created)
	return created, nil
}

// EditLeave updates a pending request: its owner, or a role with full
// control. Decided requests are immutable.
func (s *Store) EditLeave(ctx context.Context, req core.LeaveRequest) (core.LeaveRequest, error) {
	identity, err := s.identity()
	if err != nil {
		return core.LeaveRequest{}, err
	}
	checker := auth.NewChecker(identity.Role)
	if !checker.Has(auth.PermLeaveFullControl) && !ownsRecord(identity, req.EmployeeRef) {
		return core.LeaveRequest{}, ErrPermissionDenied
	}

	if existing, ok := s.findLeave(req.ID); ok && existing.Status != core.LeavePending {
		return core.LeaveRequest{}, ErrAlreadyDecided
	}
	if msg := worktime.ValidateDateRange(req.StartDate, req.EndDate, time.Now()); msg != "" {
		return core.LeaveRequest{}, ValidationError(msg)
	}
	req.Days = worktime.InclusiveDays(req.StartDate, req.EndDate)
	req.Status = core.LeavePending

	updated, err := s.api.Leave.Update(ctx, req)
	if errors.Is(err, ErrSessionExpired) {
		return core.LeaveRequest{}, err
	}
	if err != nil {
		req.Sync = core.SyncFailed
		s.UpdateLeave(req)
		return req, fmt.Errorf("leave request not saved to backend: %w", err)
	}

	updated.Sync = core.SyncSynced
	s.UpdateLeave(updated)
	return updated, nil
}

// ApproveLeave transitions a pending request to approved. One-way: a decided
// request is never re-decided, which also keeps a concurrent approve from
// overwriting a reject.
func (s *Store) ApproveLeave(ctx context.Context, id string) (core.LeaveRequest, error) {
	return s.decideLeave(ctx, id, core.LeaveApproved)
}

// RejectLeave transitions a pending request to rejected.
func (s *Store) RejectLeave(ctx context.Context, id string) (core.LeaveRequest, error) {
	return s.decideLeave(ctx, id, core.LeaveRejected)
}

func (s *Store) decideLeave(ctx context.Context, id string, decision core.LeaveStatus) (core.LeaveRequest, error) {
	identity, err := s.identity()
	if err != nil {
		return core.LeaveRequest{}, err
	}
	checker := auth.NewChecker(identity.Role)
	if !checker.HasAny(auth.PermLeaveFullControl, auth.PermLeaveApproveReject, auth.PermLeaveApproveTeam) {
		return core.LeaveRequest{}, ErrPermissionDenied
	}

	existing, ok := s.findLeave(id)
	if ok && existing.Status != core.LeavePending {
		return core.LeaveRequest{}, ErrAlreadyDecided
	}

	var decided core.LeaveRequest
	if decision == core.LeaveApproved {
		decided, err = s.api.Leave.Approve(ctx, id)
	} else {
		decided, err = s.api.Leave.Reject(ctx, id)
	}
	if errors.Is(err, ErrSessionExpired) {
		return core.LeaveRequest{}, err
	}
	if err != nil {
		if !ok {
			return core.LeaveRequest{}, fmt.Errorf("leave decision not saved to backend: %w", err)
		}
		existing.Status = decision
		existing.ApproverRef = identity.ID
		existing.Sync = core.SyncFailed
		s.UpdateLeave(existing)
		return existing, fmt.Errorf("leave decision not saved to backend: %w", err)
	}

	decided.Sync = core.SyncSynced
	s.UpdateLeave(decided)
	return decided, nil
}

// AssignTask creates a task, attributed to the current identity as assigner.
func (s *Store) AssignTask(ctx context.Context, task core.Task) (core.Task, error) {
	identity, err := s.identity()
	if err != nil {
		return core.Task{}, err
	}
	checker := auth.NewChecker(identity.Role)
	if !checker.HasAny(auth.PermEmployeeView, auth.PermReportsTeam) {
		return core.Task{}, ErrPermissionDenied
	}

	if task.AssignerRef == "" {
		task.AssignerRef = identity.ID
		task.AssignerName = identity.Name
	}
	if task.AssignedDate == "" {
		task.AssignedDate = time.Now().Format(worktime.DateLayout)
	}
	task = applyTaskInvariants(task)

	created, err := s.api.Tasks.Create(ctx, task)
	if errors.Is(err, ErrSessionExpired) {
		return core.Task{}, err
	}
	if err != nil {
		task.ID = localID()
		task.Sync = core.SyncFailed
		s.AddTask(task)
		return task, fmt.Errorf("task not saved to backend: %w", err)
	}

	created.Sync = core.SyncSynced
	s.AddTask(created)
	return created, nil
}

// EditTask updates a task: its assignee, or a role with a task-management
// capability. Progress of 100 always completes the task, whatever status was
// supplied alongside it.
func (s *Store) EditTask(ctx context.Context, task core.Task) (core.Task, error) {
	identity, err := s.identity()
	if err != nil {
		return core.Task{}, err
	}
	checker := auth.NewChecker(identity.Role)
	manager := checker.HasAny(auth.PermEmployeeView, auth.PermReportsTeam)
	if !manager && !ownsRecord(identity, task.AssigneeRef) {
		return core.Task{}, ErrPermissionDenied
	}

	task = applyTaskInvariants(task)

	updated, err := s.api.Tasks.Update(ctx, task)
	if errors.Is(err, ErrSessionExpired) {
		return core.Task{}, err
	}
	if err != nil {
		task.Sync = core.SyncFailed
		s.UpdateTask(task)
		return task, fmt.Errorf("task not saved to backend: %w", err)
	}

	updated.Sync = core.SyncSynced
	s.UpdateTask(updated)
	return updated, nil
}

// UpdateTaskProgress records a progress change with an audit entry. The
// backend owns the canonical history; the optimistic path appends locally.
func (s *Store) UpdateTaskProgress(ctx context.Context, id string, progress int, notes string) (core.Task, error) {
	identity, err := s.identity()
	if err != nil {
		return core.Task{}, err
	}

	existing, ok := s.findTask(id)
	if !ok {
		return core.Task{}, fmt.Errorf("task %s not in store", id)
	}
	checker := auth.NewChecker(identity.Role)
	manager := checker.HasAny(auth.PermEmployeeView, auth.PermReportsTeam)
	if !manager && !ownsRecord(identity, existing.AssigneeRef) {
		return core.Task{}, ErrPermissionDenied
	}

	progress = clampProgress(progress)

	updated, err := s.api.Tasks.UpdateProgress(ctx, id, progress, notes)
	if errors.Is(err, ErrSessionExpired) {
		return core.Task{}, err
	}
	if err != nil {
		existing.Progress = progress
		if progress > 0 && existing.Status == core.TaskNotStarted {
			existing.Status = core.TaskInProgress
		}
		existing = applyTaskInvariants(existing)
		existing.History = append(existing.History, core.ProgressEntry{
			ID:        localID(),
			Progress:  progress,
			Notes:     notes,
			ChangedBy: identity.Name,
			ChangedAt: time.Now().Format(time.RFC3339),
		})
		existing.Sync = core.SyncFailed
		s.UpdateTask(existing)
		return existing, fmt.Errorf("progress not saved to backend: %w", err)
	}

	updated.Sync = core.SyncSynced
	s.UpdateTask(updated)
	return updated, nil
}

// CreateEmployee adds an employee record. Admin/HR only.
func (s *Store) CreateEmployee(ctx context.Context, emp core.Employee) (core.Employee, error) {
	identity, err := s.identity()
	if err != nil {
		return core.Employee{}, err
	}
	if !auth.HasPermission(identity.Role, auth.PermEmployeeAdd) {
		return core.Employee{}, ErrPermissionDenied
	}
	if emp.Status == "" {
		emp.Status = core.EmployeeActive
	}

	created, err := s.api.Employees.Create(ctx, emp)
	if errors.Is(err, ErrSessionExpired) {
		return core.Employee{}, err
	}
	if err != nil {
		emp.ID = localID()
		emp.Sync = core.SyncFailed
		s.AddEmployee(emp)
		return emp, fmt.Errorf("employee not saved to backend: %w", err)
	}

	created.Sync = core.SyncSynced
	s.AddEmployee(created)
	return created, nil
}

// EditEmployee performs a full update. Admin/HR only.
func (s *Store) EditEmployee(ctx context.Context, emp core.Employee) (core.Employee, error) {
	identity, err := s.identity()
	if err != nil {
		return core.Employee{}, err
	}
	if !auth.HasPermission(identity.Role, auth.PermEmployeeEdit) {
		return core.Employee{}, ErrPermissionDenied
	}

	updated, err := s.api.Employees.Update(ctx, emp)
	if errors.Is(err, ErrSessionExpired) {
		return core.Employee{}, err
	}
	if err != nil {
		emp.Sync = core.SyncFailed
		s.UpdateEmployee(emp)
		return emp, fmt.Errorf("employee not saved to backend: %w", err)
	}

	updated.Sync = core.SyncSynced
	s.UpdateEmployee(updated)
	return updated, nil
}

// EditOwnProfile lets an employee change the contact fields of their own
// record. EmployeeID, joining date and salary are never touched through this
// path.
func (s *Store) EditOwnProfile(ctx context.Context, email, phone string) (core.Employee, error) {
	identity, err := s.identity()
	if err != nil {
		return core.Employee{}, err
	}
	if !auth.HasPermission(identity.Role, auth.PermEmployeeEditOwn) {
		return core.Employee{}, ErrPermissionDenied
	}

	existing, ok := s.findEmployee(identity.ID)
	if !ok {
		return core.Employee{}, fmt.Errorf("own employee record not in store")
	}
	if email != "" {
		existing.Email = email
	}
	if phone != "" {
		existing.Phone = phone
	}

	updated, err := s.api.Employees.Update(ctx, existing)
	if errors.Is(err, ErrSessionExpired) {
		return core.Employee{}, err
	}
	if err != nil {
		existing.Sync = core.SyncFailed
		s.UpdateEmployee(existing)
		return existing, fmt.Errorf("profile not saved to backend: %w", err)
	}

	updated.Sync = core.SyncSynced
	s.UpdateEmployee(updated)
	return updated, nil
}

// RemoveEmployee deletes an employee record. Admin only.
func (s *Store) RemoveEmployee(ctx context.Context, id string) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}
	if !auth.HasPermission(identity.Role, auth.PermEmployeeDelete) {
		return ErrPermissionDenied
	}

	err = s.api.Employees.Delete(ctx, id)
	if errors.Is(err, ErrSessionExpired) {
		return err
	}
	s.DeleteEmployee(id)
	if err != nil {
		return fmt.Errorf("employee not deleted on backend: %w", err)
	}
	return nil
}

// applyTaskInvariants clamps progress and keeps progress and status
// consistent: 100 means completed.
func applyTaskInvariants(task core.Task) core.Task {
	task.Progress = clampProgress(task.Progress)
	if task.Progress == 100 {
		task.Status = core.TaskCompleted
	}
	return task
}

func localID() string {
	return "local-" + uuid.NewString()
}
