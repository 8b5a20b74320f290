package signer

// service implements Service
type service struct{}

// NewService creates a new signing service. The service holds no state; a
// single instance is safe for concurrent use.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}
