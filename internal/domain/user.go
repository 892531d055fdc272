package domain

import (
	"encoding/json"
)

// knownProfileFields are the keys the client understands; everything else the
// server sends is preserved verbatim in Extra so a round-trip loses nothing.
var knownProfileFields = map[string]struct{}{
	"id":       {},
	"username": {},
	"email":    {},
	"is_admin": {},
}

// UserProfile is the identity snapshot returned by the whoami endpoint.
// It is immutable once received: the session store replaces it wholesale on
// each successful authentication or restoration and never mutates fields.
type UserProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`

	// Extra holds additional server-supplied fields not modeled above.
	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps any unrecognized keys
// in Extra.
func (p *UserProfile) UnmarshalJSON(data []byte) error {
	type alias UserProfile
	var known alias
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range knownProfileFields {
		delete(raw, key)
	}
	if len(raw) == 0 {
		raw = nil
	}

	*p = UserProfile(known)
	p.Extra = raw
	return nil
}

// MarshalJSON emits the known fields merged with Extra. Known fields win on
// key collision.
func (p UserProfile) MarshalJSON() ([]byte, error) {
	merged := make(map[string]json.RawMessage, len(p.Extra)+4)
	for k, v := range p.Extra {
		merged[k] = v
	}

	type alias UserProfile
	knownJSON, err := json.Marshal(alias(p))
	if err != nil {
		return nil, err
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(knownJSON, &known); err != nil {
		return nil, err
	}
	for k, v := range known {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// WhoAmIResponse is the body of GET /auth/whoami.
type WhoAmIResponse struct {
	UserDetails *UserProfile `json:"user_details"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by POST /auth/login. The message is
// optional; some deployments return an empty object.
type LoginResponse struct {
	Message string `json:"message,omitempty"`
}
