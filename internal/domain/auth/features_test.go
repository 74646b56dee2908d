package auth

import "testing"

func TestFeaturesAdmin(t *testing.T) {
	f := Features(RoleAdmin)

	if !f.ShowEmployees || !f.ShowAttendance || !f.ShowLeave || !f.ShowReports || !f.ShowSettings {
		t.Fatalf("admin should see all primary navigation, got %+v", f)
	}
	if !f.CanAddEmployee || !f.CanDeleteEmployee || !f.CanManageAllLeave || !f.CanAccessDatabase {
		t.Fatalf("admin missing management affordances: %+v", f)
	}
	if f.CanEditOwnProfile {
		t.Fatal("admin has no self-service profile affordance")
	}
}

func TestFeaturesEmployee(t *testing.T) {
	f := Features(RoleEmployee)

	if f.CanAddEmployee || f.CanDeleteEmployee || f.CanApproveRejectLeave {
		t.Fatalf("employee granted management affordances: %+v", f)
	}
	if !f.CanMarkOwnAttendance || !f.CanApplyLeave || !f.CanEditOwnProfile {
		t.Fatalf("employee missing self-service affordances: %+v", f)
	}
	if !f.CanUseChatbot {
		t.Fatal("every role can use the chatbot")
	}
}

func TestFeaturesTeamLead(t *testing.T) {
	f := Features(RoleTeamLead)

	if !f.CanApproveTeamLeave || !f.CanViewTeamAttendance || !f.CanViewTeamReports {
		t.Fatalf("team lead missing team affordances: %+v", f)
	}
	if f.ShowEmployees {
		t.Fatal("team lead holds no employee management tokens")
	}
}

func TestFeaturesUnknownRoleAllFalse(t *testing.T) {
	f := Features(Role("nobody"))
	if f != (FeatureFlags{}) {
		t.Fatalf("unknown role should resolve to zero flags, got %+v", f)
	}
}
