package authorization

// Capabilities are the per-request action flags for one user. The same
// flags drive both server-side enforcement in the usecases and the
// permissions endpoint the UI reads; the endpoint is a convenience mirror,
// never the enforcement point.
type Capabilities struct {
	CanView           bool `json:"can_view"`
	CanEditDetails    bool `json:"can_edit_details"`
	CanChangeStatus   bool `json:"can_change_status"`
	CanChangePriority bool `json:"can_change_priority"`
	CanAssign         bool `json:"can_assign"`
	CanDelete         bool `json:"can_delete"`
	CanComment        bool `json:"can_comment"`
	CanAttach         bool `json:"can_attach"`
	CanViewActivity   bool `json:"can_view_activity"`
}

// statusNew is the only status in which creators may still edit details.
const statusNew = "new"

// EvaluateRequestCapabilities is a pure function of the caller's role, their
// relationship to the request (creator, assignee), and the request status.
// It performs no I/O; callers resolve the inputs first.
func EvaluateRequestCapabilities(role UserRole, isCreator, isAssignee bool, status string) Capabilities {
	switch role {
	case RoleAdmin:
		return Capabilities{
			CanView:           true,
			CanEditDetails:    true,
			CanChangeStatus:   true,
			CanChangePriority: true,
			CanAssign:         true,
			CanDelete:         true,
			CanComment:        true,
			CanAttach:         true,
			CanViewActivity:   true,
		}
	case RoleTeamMember:
		return Capabilities{
			CanView:           true,
			CanEditDetails:    true,
			CanChangeStatus:   true,
			CanChangePriority: true,
			CanAssign:         true,
			CanDelete:         false,
			CanComment:        true,
			CanAttach:         true,
			CanViewActivity:   true,
		}
	case RoleUser:
		// A user still assigned after a role downgrade keeps working the
		// request but loses triage rights.
		if !isCreator && !isAssignee {
			return Capabilities{}
		}
		return Capabilities{
			CanView:         true,
			CanEditDetails:  isCreator && status == statusNew,
			CanComment:      true,
			CanAttach:       true,
			CanViewActivity: true,
		}
	case RoleGuest:
		if !isCreator && !isAssignee {
			return Capabilities{}
		}
		return Capabilities{
			CanView:         true,
			CanViewActivity: true,
		}
	default:
		return Capabilities{}
	}
}
