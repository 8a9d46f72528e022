package domain

// Role differentiates supervisor vs employee identities. The wire values match
// the role names used by the clients.
type Role string

const (
	RoleSupervisor Role = "jefe"
	RoleEmployee   Role = "empleado"
)

// Identity is the authenticated subject embedded in access tokens. It carries
// no secrets; access tokens are verified by signature alone.
type Identity struct {
	ID          string
	DisplayName string
	Role        Role
}

// Owner binds a refresh token to exactly one identity of either role.
type Owner struct {
	Kind Role
	ID   string
}
