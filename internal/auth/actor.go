package auth

// Actor is the explicit authentication context of a request. Handlers
// resolve it once from the session and pass it into every service call
// instead of relying on ambient per-request state.
type Actor struct {
	UserID  string
	IsAdmin bool
}
