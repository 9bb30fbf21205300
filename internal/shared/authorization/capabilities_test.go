package authorization

import "testing"

func TestEvaluateRequestCapabilities_Admin(t *testing.T) {
	caps := EvaluateRequestCapabilities(RoleAdmin, false, false, "completed")

	all := []struct {
		name string
		got  bool
	}{
		{"CanView", caps.CanView},
		{"CanEditDetails", caps.CanEditDetails},
		{"CanChangeStatus", caps.CanChangeStatus},
		{"CanChangePriority", caps.CanChangePriority},
		{"CanAssign", caps.CanAssign},
		{"CanDelete", caps.CanDelete},
		{"CanComment", caps.CanComment},
		{"CanAttach", caps.CanAttach},
		{"CanViewActivity", caps.CanViewActivity},
	}
	for _, f := range all {
		if !f.got {
			t.Errorf("admin %s = false, want true", f.name)
		}
	}
}

func TestEvaluateRequestCapabilities_TeamMember(t *testing.T) {
	caps := EvaluateRequestCapabilities(RoleTeamMember, false, false, "in_progress")

	if !caps.CanView || !caps.CanEditDetails || !caps.CanChangeStatus ||
		!caps.CanChangePriority || !caps.CanAssign || !caps.CanComment ||
		!caps.CanAttach || !caps.CanViewActivity {
		t.Errorf("team member should hold every triage capability, got %+v", caps)
	}
	if caps.CanDelete {
		t.Error("team member CanDelete = true, want false")
	}
}

func TestEvaluateRequestCapabilities_User(t *testing.T) {
	tests := []struct {
		name       string
		isCreator  bool
		isAssignee bool
		status     string
		want       Capabilities
	}{
		{
			name:      "creator of new request",
			isCreator: true,
			status:    "new",
			want: Capabilities{
				CanView:         true,
				CanEditDetails:  true,
				CanComment:      true,
				CanAttach:       true,
				CanViewActivity: true,
			},
		},
		{
			name:      "creator after triage started",
			isCreator: true,
			status:    "in_progress",
			want: Capabilities{
				CanView:         true,
				CanComment:      true,
				CanAttach:       true,
				CanViewActivity: true,
			},
		},
		{
			name:       "assignee who is not the creator",
			isAssignee: true,
			status:     "new",
			want: Capabilities{
				CanView:         true,
				CanComment:      true,
				CanAttach:       true,
				CanViewActivity: true,
			},
		},
		{
			name:   "stranger",
			status: "new",
			want:   Capabilities{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateRequestCapabilities(RoleUser, tt.isCreator, tt.isAssignee, tt.status)
			if got != tt.want {
				t.Errorf("EvaluateRequestCapabilities() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEvaluateRequestCapabilities_Guest(t *testing.T) {
	tests := []struct {
		name      string
		isCreator bool
		want      Capabilities
	}{
		{
			name:      "guest viewing own request",
			isCreator: true,
			want: Capabilities{
				CanView:         true,
				CanViewActivity: true,
			},
		},
		{
			name: "guest viewing someone else's request",
			want: Capabilities{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateRequestCapabilities(RoleGuest, tt.isCreator, false, "new")
			if got != tt.want {
				t.Errorf("EvaluateRequestCapabilities() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEvaluateRequestCapabilities_UnknownRole(t *testing.T) {
	got := EvaluateRequestCapabilities(UserRole("visitor"), true, true, "new")
	if got != (Capabilities{}) {
		t.Errorf("unknown role should grant nothing, got %+v", got)
	}
}

func TestUserRoleHelpers(t *testing.T) {
	tests := []struct {
		role          UserRole
		isAdmin       bool
		isStaff       bool
		canBeAssigned bool
		isValid       bool
	}{
		{RoleAdmin, true, true, true, true},
		{RoleTeamMember, false, true, true, true},
		{RoleUser, false, false, false, true},
		{RoleGuest, false, false, false, true},
		{UserRole("owner"), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.IsAdmin(); got != tt.isAdmin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.isAdmin)
			}
			if got := tt.role.IsStaff(); got != tt.isStaff {
				t.Errorf("IsStaff() = %v, want %v", got, tt.isStaff)
			}
			if got := tt.role.CanBeAssigned(); got != tt.canBeAssigned {
				t.Errorf("CanBeAssigned() = %v, want %v", got, tt.canBeAssigned)
			}
			if got := tt.role.IsValid(); got != tt.isValid {
				t.Errorf("IsValid() = %v, want %v", got, tt.isValid)
			}
		})
	}
}

func TestParseUserRole(t *testing.T) {
	tests := []struct {
		input string
		want  UserRole
	}{
		{"admin", RoleAdmin},
		{"team_member", RoleTeamMember},
		{"user", RoleUser},
		{"guest", RoleGuest},
		{"", RoleUser},
		{"superuser", RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseUserRole(tt.input); got != tt.want {
				t.Errorf("ParseUserRole(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
