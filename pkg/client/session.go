package client

// Session tracks the token of the signed-in administrator. It is shared by
// every call made through a Client.
type Session struct {
	store          TokenStore
	onUnauthorized func()
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithOnUnauthorized registers fn to run after any 401 has cleared the token,
// typically to send the user back to the login prompt.
func WithOnUnauthorized(fn func()) SessionOption {
	return func(s *Session) { s.onUnauthorized = fn }
}

func NewSession(store TokenStore, opts ...SessionOption) *Session {
	if store == nil {
		store = NewMemoryTokenStore()
	}
	s := &Session{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the held token, or "" when signed out.
func (s *Session) Token() (string, error) {
	return s.store.Load()
}

// Authenticated reports whether a token is held. It does not check expiry.
func (s *Session) Authenticated() bool {
	token, err := s.store.Load()
	return err == nil && token != ""
}

func (s *Session) SetToken(token string) error {
	return s.store.Save(token)
}

// Logout drops the held token.
func (s *Session) Logout() error {
	return s.store.Clear()
}

func (s *Session) unauthorized() error {
	err := s.store.Clear()
	if s.onUnauthorized != nil {
		s.onUnauthorized()
	}
	return err
}
