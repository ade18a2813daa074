package domain

// Scope identifies which retention scope holds the credential.
//
//	ScopeNone    no credential stored
//	ScopeDurable survives agent and machine restarts ("remember me")
//	ScopeSession lives only as long as the current session
type Scope int

const (
	ScopeNone Scope = iota
	ScopeDurable
	ScopeSession
)

func (s Scope) String() string {
	switch s {
	case ScopeDurable:
		return "durable"
	case ScopeSession:
		return "session"
	default:
		return "none"
	}
}

// Persisted key names, identical in both scopes.
const (
	KeyToken = "auth-token"
	KeyUser  = "user"
)

// Credential is the tagged union of what the credential store holds. Only
// one scope can be populated, so a Credential always names exactly one.
type Credential struct {
	Scope Scope
	Token string
	User  UserProfile
}

// Present reports whether a token is stored in any scope.
func (c Credential) Present() bool {
	return c.Scope != ScopeNone && c.Token != ""
}

// None is the empty credential.
func None() Credential {
	return Credential{Scope: ScopeNone}
}
