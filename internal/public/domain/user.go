package domain

// Role constants mirror the role claim issued with access tokens.
const (
	RoleConsumer   = "consumer"
	RoleStoreOwner = "store_owner"
	RoleAdmin      = "admin"
)

// User is the public profile of an account.
type User struct {
	ID    string
	Name  string
	Email string
	Role  string
}
