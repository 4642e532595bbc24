package constant

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	MinPasswordLength  = 8
	MinNameLength      = 2
	MinJWTSecretLength = 32
)
