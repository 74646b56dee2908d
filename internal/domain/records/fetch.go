package records

import (
	"context"
	"errors"
	"log/slog"

	"ems/internal/domain/auth"
	"ems/internal/domain/core"
	"ems/internal/domain/session"
)

// Source identifies which path populated the store on a refresh.
type Source string

const (
	// SourceAPI: the identity-scoped primary call succeeded.
	SourceAPI Source = "api"
	// SourceFiltered: the general secondary call succeeded and was filtered
	// locally by identity.
	SourceFiltered Source = "filtered"
	// SourceFallback: nothing usable came back; synthetic placeholder
	// records were installed.
	SourceFallback Source = "fallback"
)

// OfflineNotice is the message views surface when a refresh fell back to
// synthetic data.
const OfflineNotice = "Using offline data. Backend server may not be responding."

// Offline reports whether the refresh ended on the synthetic-data path.
func (s Source) Offline() bool { return s == SourceFallback }

// RefreshAttendance populates the attendance slice: identity-scoped primary
// call, then general call filtered locally, then synthetic fallback. The
// store is always populated on return unless the session itself has expired.
func (s *Store) RefreshAttendance(ctx context.Context) (Source, error) {
	identity, err := s.identity()
	if err != nil {
		return "", err
	}
	checker := auth.NewChecker(identity.Role)
	viewAll := checker.HasAny(auth.PermAttendanceView, auth.PermAttendanceViewTeam)

	var payloads []AttendancePayload
	if viewAll {
		payloads, err = s.api.Attendance.List(ctx)
	} else {
		payloads, err = s.api.Attendance.ListByEmployee(ctx, identity.EmployeeID)
	}
	if errors.Is(err, ErrSessionExpired) {
		return "", err
	}
	if err == nil && len(payloads) > 0 {
		s.SetAllAttendance(normalizeAttendance(payloads, identity))
		return SourceAPI, nil
	}

	// Secondary: the general listing, filtered locally by identity. Skipped
	// when the primary already was the general listing.
	if !viewAll {
		payloads, err = s.api.Attendance.List(ctx)
		if errors.Is(err, ErrSessionExpired) {
			return "", err
		}
		if err == nil {
			var mine []core.AttendanceRecord
			for _, p := range payloads {
				if ownsRecord(identity, string(p.Employee)) {
					mine = append(mine, p.Normalize(identity))
				}
			}
			if len(mine) > 0 {
				s.SetAllAttendance(mine)
				return SourceFiltered, nil
			}
		}
	}

	slog.Warn("attendance refresh falling back to offline data", "employeeId", identity.EmployeeID)
	s.SetAllAttendance(fallbackAttendance(identity))
	return SourceFallback, nil
}

// RefreshLeaves follows the same primary/secondary/fallback chain for leave
// requests.
func (s *Store) RefreshLeaves(ctx context.Context) (Source, error) {
	identity, err := s.identity()
	if err != nil {
		return "", err
	}
	checker := auth.NewChecker(identity.Role)
	viewAll := checker.HasAny(auth.PermLeaveFullControl, auth.PermLeaveApproveReject, auth.PermLeaveApproveTeam)

	var payloads []LeavePayload
	if viewAll {
		payloads, err = s.api.Leave.List(ctx)
	} else {
		payloads, err = s.api.Leave.ListByEmployee(ctx, identity.EmployeeID)
	}
	if errors.Is(err, ErrSessionExpired) {
		return "", err
	}
	if err == nil && len(payloads) > 0 {
		s.SetAllLeaves(normalizeLeaves(payloads, identity))
		return SourceAPI, nil
	}

	if !viewAll {
		payloads, err = s.api.Leave.List(ctx)
		if errors.Is(err, ErrSessionExpired) {
			return "", err
		}
		if err == nil {
			var mine []core.LeaveRequest
			for _, p := range payloads {
				if ownsRecord(identity, string(p.Employee)) {
					mine = append(mine, p.Normalize(identity))
				}
			}
			if len(mine) > 0 {
				s.SetAllLeaves(mine)
				return SourceFiltered, nil
			}
		}
	}

	slog.Warn("leave refresh falling back to offline data", "employeeId", identity.EmployeeID)
	s.SetAllLeaves(fallbackLeaves(identity))
	return SourceFallback, nil
}

// RefreshTasks follows the same chain for tasks. Assignee scoping applies to
// roles without a management capability.
func (s *Store) RefreshTasks(ctx context.Context) (Source, error) {
	identity, err := s.identity()
	if err != nil {
		return "", err
	}
	checker := auth.NewChecker(identity.Role)
	viewAll := checker.HasAny(auth.PermEmployeeView, auth.PermReportsTeam)

	var payloads []TaskPayload
	if viewAll {
		payloads, err = s.api.Tasks.List(ctx)
	} else {
		payloads, err = s.api.Tasks.ListByEmployee(ctx, identity.EmployeeID)
	}
	if errors.Is(err, ErrSessionExpired) {
		return "", err
	}
	if err == nil && len(payloads) > 0 {
		s.SetAllTasks(normalizeTasks(payloads, identity))
		return SourceAPI, nil
	}

	if !viewAll {
		payloads, err = s.api.Tasks.List(ctx)
		if errors.Is(err, ErrSessionExpired) {
			return "", err
		}
		if err == nil {
			var mine []core.Task
			for _, p := range payloads {
				if ownsRecord(identity, string(p.AssignedTo)) {
					mine = append(mine, p.Normalize(identity))
				}
			}
			if len(mine) > 0 {
				s.SetAllTasks(mine)
				return SourceFiltered, nil
			}
		}
	}

	slog.Warn("task refresh falling back to offline data", "employeeId", identity.EmployeeID)
	s.SetAllTasks(fallbackTasks(identity))
	return SourceFallback, nil
}

// RefreshEmployees fetches the employee directory. There is no scoped
// variant; roles without the view capability get a fallback of themselves.
func (s *Store) RefreshEmployees(ctx context.Context) (Source, error) {
	identity, err := s.identity()
	if err != nil {
		return "", err
	}

	payloads, err := s.api.Employees.List(ctx)
	if errors.Is(err, ErrSessionExpired) {
		return "", err
	}
	if err == nil && len(payloads) > 0 {
		emps := make([]core.Employee, 0, len(payloads))
		for _, p := range payloads {
			emps = append(emps, p.Normalize())
		}
		s.SetAllEmployees(emps)
		return SourceAPI, nil
	}

	slog.Warn("employee refresh falling back to offline data", "employeeId", identity.EmployeeID)
	s.SetAllEmployees(fallbackEmployees(identity))
	return SourceFallback, nil
}

// ownsRecord matches a record's employee reference against either the
// internal id or the business employee id of the identity.
func ownsRecord(identity session.Identity, employeeRef string) bool {
	return employeeRef != "" && (employeeRef == identity.ID || employeeRef == identity.EmployeeID)
}

func normalizeAttendance(payloads []AttendancePayload, identity session.Identity) []core.AttendanceRecord {
	out := make([]core.AttendanceRecord, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.Normalize(identity))
	}
	return out
}

func normalizeLeaves(payloads []LeavePayload, identity session.Identity) []core.LeaveRequest {
	out := make([]core.LeaveRequest, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.Normalize(identity))
	}
	return out
}

func normalizeTasks(payloads []TaskPayload, identity session.Identity) []core.Task {
	out := make([]core.Task, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.Normalize(identity))
	}
	return out
}
