package user

// UserRepositoryInterface is the durable credential mapping. Create must
// enforce username uniqueness under the repository's own write lock so
// that two concurrent registrations cannot both succeed.
type UserRepositoryInterface interface {
	Create(user *User) error
	GetByUsername(username string) (*User, error)
}
