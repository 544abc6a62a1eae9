package constants

// Role is the access level carried in a bearer token.
type Role string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

var roleRank = map[Role]int{
	RoleViewer:   1,
	RoleOperator: 2,
	RoleAdmin:    3,
}

func (r Role) String() string { return string(r) }

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Covers reports whether r grants at least the access of required.
func (r Role) Covers(required Role) bool {
	return r.Valid() && roleRank[r] >= roleRank[required]
}
