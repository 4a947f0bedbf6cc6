package model

// PrincipalKind tags the variant of an authenticated principal.
type PrincipalKind string

const (
	PrincipalUser   PrincipalKind = "user"
	PrincipalClient PrincipalKind = "client"
)

// Principal is the identity resolved from a verified token for the duration of
// one request. For staff tokens Flag is set; for client tokens Ctype is set.
type Principal struct {
	Kind  PrincipalKind
	ID    uint64
	Name  string
	Flag  UserFlag
	Ctype ClientType
}

// IsAdmin reports whether the principal is a staff admin.
func (p Principal) IsAdmin() bool {
	return p.Kind == PrincipalUser && p.Flag == FlagAdmin
}
