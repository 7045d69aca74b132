package authn

// Hybrid composes two strategies with sequential fallback: the primary is
// tried first, the secondary only once the primary has yielded nothing.
// Attempts never run concurrently against the shared session state.
type Hybrid struct {
	Primary   Strategy
	Secondary Strategy
}

// NewHybrid builds the standard composition: Azure AD primary when
// configured, local fallback
func NewHybrid(azure *AzureAD, local *Local) *Hybrid {
	h := &Hybrid{}
	if azure != nil && azure.Config.Enabled() {
		h.Primary = azure
		if local != nil {
			h.Secondary = local
		}
		return h
	}
	if local != nil {
		h.Primary = local
	}
	if azure != nil {
		h.Secondary = azure
	}
	return h
}

// AttemptLogin tries the primary strategy, then the secondary when the
// primary did not authenticate. The first authenticated result wins.
func (h *Hybrid) AttemptLogin(s *Session, creds Credentials) (Identity, Status) {
	status := StatusNotAttempted
	if h.Primary != nil {
		id, st := h.Primary.AttemptLogin(s, creds)
		if st == StatusAuthenticated {
			return id, st
		}
		status = st
	}

	if h.Secondary != nil {
		id, st := h.Secondary.AttemptLogin(s, creds)
		if st == StatusAuthenticated {
			return id, st
		}
		if st == StatusFailed {
			status = st
		}
	}

	return Identity{}, status
}

// CurrentIdentity returns the session identity from whichever strategy
// established one, primary first
func (h *Hybrid) CurrentIdentity(s *Session) (*Identity, bool) {
	if h.Primary != nil {
		if id, ok := h.Primary.CurrentIdentity(s); ok {
			return id, true
		}
	}
	if h.Secondary != nil {
		if id, ok := h.Secondary.CurrentIdentity(s); ok {
			return id, true
		}
	}
	return nil, false
}

// Logout clears the session through both strategies
func (h *Hybrid) Logout(s *Session) {
	if h.Primary != nil {
		h.Primary.Logout(s)
	}
	if h.Secondary != nil {
		h.Secondary.Logout(s)
	}
}

// RequireAuthentication reports whether the session carries a valid,
// non-expired identity from exactly one of the underlying strategies
func (h *Hybrid) RequireAuthentication(s *Session) bool {
	_, ok := h.CurrentIdentity(s)
	return ok
}
