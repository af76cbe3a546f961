package entity

// Role gates access to write endpoints.
type Role string

const (
	RoleUser      Role = "user"
	RolePublisher Role = "publisher"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RolePublisher, RoleAdmin:
		return true
	}
	return false
}

// SelfAssignable reports whether a role may be picked at registration.
func (r Role) SelfAssignable() bool {
	return r == RoleUser || r == RolePublisher
}
