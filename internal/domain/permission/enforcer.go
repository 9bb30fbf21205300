package permission

// Enforcer is the coarse policy decision point. Subjects are role names;
// fine-grained ownership and status decisions belong to the capability
// evaluator, not the policy store.
type Enforcer interface {
	Enforce(subject string, resource string, action string) (bool, error)
	AddPolicy(role string, resource string, action string) error
	RemovePolicy(role string, resource string, action string) error
	GetPermissionsForRole(role string) ([][]string, error)
	LoadPolicy() error
}
