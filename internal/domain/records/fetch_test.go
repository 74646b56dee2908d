package records

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ems/internal/domain/core"
)

func TestRefreshAttendancePrimarySucceeds(t *testing.T) {
	store, att, _, _, _ := newTestStore(employeeIdentity())
	att.byEmp = []AttendancePayload{
		{ID: "1", Date: "2025-08-20", Employee: "7", CheckIn: "9:0", CheckOut: "17:30", Hours: 8.5, Status: "Present"},
	}

	source, err := store.RefreshAttendance(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if source != SourceAPI {
		t.Fatalf("expected api source, got %s", source)
	}

	recs := store.Attendance()
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].CheckIn != "09:00" {
		t.Fatalf("check-in not normalized: %q", recs[0].CheckIn)
	}
	if recs[0].Sync != core.SyncSynced {
		t.Fatalf("api records should be synced, got %s", recs[0].Sync)
	}
}

func TestRefreshAttendanceLegacyKeysAndBackfill(t *testing.T) {
	store, att, _, _, _ := newTestStore(employeeIdentity())
	att.byEmp = []AttendancePayload{
		{ID: "1", Date: "2025-08-20", Employee: "7", ClockIn: "9:15:00", Hours: 8, Status: "Present"},
	}

	if _, err := store.RefreshAttendance(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	rec := store.Attendance()[0]
	if rec.CheckIn != "09:15" {
		t.Fatalf("legacy clock_in key not picked up: %q", rec.CheckIn)
	}
	if rec.CheckOut != "17:15" {
		t.Fatalf("check-out not back-filled from hours: %q", rec.CheckOut)
	}
}

func TestRefreshAttendanceSecondaryFiltersLocally(t *testing.T) {
	store, att, _, _, _ := newTestStore(employeeIdentity())
	att.byEmpErr = errBackendDown
	att.listAll = []AttendancePayload{
		{ID: "1", Employee: "7", Date: "2025-08-20", Status: "Present"},
		{ID: "2", Employee: "8", Date: "2025-08-20", Status: "Present"},
		{ID: "3", Employee: "emp007", Date: "2025-08-19", Status: "Late"},
	}

	source, err := store.RefreshAttendance(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if source != SourceFiltered {
		t.Fatalf("expected filtered source, got %s", source)
	}

	recs := store.Attendance()
	if len(recs) != 2 {
		t.Fatalf("local filter should keep only own records, got %+v", recs)
	}
	for _, call := range att.calls[:1] {
		if !strings.HasPrefix(call, "byEmployee") {
			t.Fatalf("primary call must come first, calls: %v", att.calls)
		}
	}
}

func TestRefreshAttendanceFallsBackToSynthetic(t *testing.T) {
	store, att, _, _, _ := newTestStore(employeeIdentity())
	att.byEmpErr = errBackendDown
	att.listAllErr = errBackendDown

	source, err := store.RefreshAttendance(context.Background())
	if err != nil {
		t.Fatalf("fallback must not error: %v", err)
	}
	if !source.Offline() {
		t.Fatalf("expected fallback source, got %s", source)
	}

	recs := store.Attendance()
	if len(recs) == 0 {
		t.Fatal("store must never be left empty after a failed refresh")
	}
	for _, rec := range recs {
		if rec.EmployeeRef != "7" {
			t.Fatalf("fallback data not scoped to identity: %+v", rec)
		}
		if rec.Sync != core.SyncPending {
			t.Fatalf("fallback records should be pending, got %s", rec.Sync)
		}
	}
}

func TestRefreshAttendanceEmptyPrimaryTriggersSecondary(t *testing.T) {
	store, att, _, _, _ := newTestStore(employeeIdentity())
	att.byEmp = nil // empty, no error
	att.listAll = []AttendancePayload{{ID: "9", Employee: "7", Date: "2025-08-18", Status: "Present"}}

	source, err := store.RefreshAttendance(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if source != SourceFiltered {
		t.Fatalf("empty primary should fall through to secondary, got %s", source)
	}
}

func TestRefreshAttendanceSessionExpiredIsFatal(t *testing.T) {
	store, att, _, _, _ := newTestStore(employeeIdentity())
	att.byEmpErr = ErrSessionExpired

	_, err := store.RefreshAttendance(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if len(store.Attendance()) != 0 {
		t.Fatal("expired session must not populate fallback data")
	}
}

func TestRefreshAttendanceAdminListsAll(t *testing.T) {
	store, att, _, _, _ := newTestStore(adminIdentity())
	att.listAll = []AttendancePayload{
		{ID: "1", Employee: "7", Date: "2025-08-20", Status: "Present"},
		{ID: "2", Employee: "8", Date: "2025-08-20", Status: "Absent"},
	}

	source, err := store.RefreshAttendance(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if source != SourceAPI {
		t.Fatalf("got %s", source)
	}
	if len(store.Attendance()) != 2 {
		t.Fatal("admin view must not be filtered by identity")
	}
	if len(att.calls) != 1 || att.calls[0] != "list" {
		t.Fatalf("admin should go straight to the general listing, calls: %v", att.calls)
	}
}

func TestRefreshRequiresIdentity(t *testing.T) {
	store, _, _, _, _ := newTestStore(fakeIdentity{})

	if _, err := store.RefreshAttendance(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestRefreshLeavesNormalizesTypeAndDays(t *testing.T) {
	store, _, leave, _, _ := newTestStore(employeeIdentity())
	leave.byEmp = []LeavePayload{
		{ID: "1", Employee: "7", LeaveType: "Annual", StartDate: "2025-09-01", EndDate: "2025-09-03", Status: "Pending"},
	}

	if _, err := store.RefreshLeaves(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	req := store.Leaves()[0]
	if req.LeaveType != core.LeaveAnnual {
		t.Fatalf("leave type alias not normalized: %q", req.LeaveType)
	}
	if req.Days != 3 {
		t.Fatalf("days not derived from range: %d", req.Days)
	}
}

func TestRefreshTasksCompletesAtFullProgress(t *testing.T) {
	store, _, _, tasks, _ := newTestStore(employeeIdentity())
	tasks.byEmp = []TaskPayload{
		{ID: "1", AssignedTo: "7", Title: "Ship it", Progress: 100, Status: "In Progress"},
	}

	if _, err := store.RefreshTasks(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := store.Tasks()[0].Status; got != core.TaskCompleted {
		t.Fatalf("progress 100 must complete the task, got %s", got)
	}
}

func TestRefreshEmployeesFallback(t *testing.T) {
	store, _, _, _, emps := newTestStore(employeeIdentity())
	emps.listAllErr = errBackendDown

	source, err := store.RefreshEmployees(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !source.Offline() {
		t.Fatalf("got %s", source)
	}
	list := store.Employees()
	if len(list) != 1 || list[0].EmployeeID != "emp007" {
		t.Fatalf("fallback should contain the identity itself, got %+v", list)
	}
}
