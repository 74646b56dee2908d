package records

import (
	"time"

	"ems/internal/domain/core"
	"ems/internal/domain/session"
	"ems/internal/domain/worktime"
)

// Synthetic placeholder records installed when neither collaborator path
// yields usable data. A deliberate demo-resilience decision: the store never
// leaves a view with a blank list. Real deployments should treat this as a
// development aid only.

func fallbackAttendance(identity session.Identity) []core.AttendanceRecord {
	today := time.Now()
	yesterday := today.AddDate(0, 0, -1)

	return []core.AttendanceRecord{
		{
			ID:           "offline-att-1",
			Date:         today.Format(worktime.DateLayout),
			EmployeeRef:  identity.ID,
			EmployeeName: identity.Name,
			Department:   identity.Department,
			CheckIn:      "09:00",
			CheckOut:     "17:30",
			Hours:        8.5,
			Status:       core.AttendancePresent,
			Sync:         core.SyncPending,
		},
		{
			ID:           "offline-att-2",
			Date:         yesterday.Format(worktime.DateLayout),
			EmployeeRef:  identity.ID,
			EmployeeName: identity.Name,
			Department:   identity.Department,
			CheckIn:      "09:15",
			CheckOut:     "17:45",
			Hours:        8.5,
			Status:       core.AttendanceLate,
			Sync:         core.SyncPending,
		},
	}
}

func fallbackLeaves(identity session.Identity) []core.LeaveRequest {
	start := time.Now().AddDate(0, 0, 7)
	end := start.AddDate(0, 0, 2)

	return []core.LeaveRequest{
		{
			ID:           "offline-leave-1",
			EmployeeRef:  identity.ID,
			EmployeeName: identity.Name,
			Department:   identity.Department,
			LeaveType:    core.LeaveAnnual,
			StartDate:    start.Format(worktime.DateLayout),
			EndDate:      end.Format(worktime.DateLayout),
			Days:         3,
			AppliedDate:  time.Now().Format(worktime.DateLayout),
			Status:       core.LeavePending,
			Reason:       "Family vacation",
			Sync:         core.SyncPending,
		},
	}
}

func fallbackTasks(identity session.Identity) []core.Task {
	assigned := time.Now().AddDate(0, 0, -3)
	due := time.Now().AddDate(0, 0, 4)

	return []core.Task{
		{
			ID:           "offline-task-1",
			Title:        "Quarterly status report",
			Description:  "Compile the department status report for the quarter.",
			AssigneeRef:  identity.ID,
			AssigneeName: identity.Name,
			AssignerName: "System Administrator",
			AssignedDate: assigned.Format(worktime.DateLayout),
			DueDate:      due.Format(worktime.DateLayout),
			Priority:     core.PriorityMedium,
			Status:       core.TaskInProgress,
			Progress:     40,
			Department:   identity.Department,
			Sync:         core.SyncPending,
		},
	}
}

func fallbackEmployees(identity session.Identity) []core.Employee {
	return []core.Employee{
		{
			ID:          identity.ID,
			EmployeeID:  identity.EmployeeID,
			Name:        identity.Name,
			Email:       identity.Email,
			Department:  identity.Department,
			Designation: identity.Designation,
			Status:      core.EmployeeActive,
			Sync:        core.SyncPending,
		},
	}
}
