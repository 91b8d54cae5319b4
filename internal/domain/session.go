package domain

import "time"

// Session is the stored auth context: the tokens issued at login and the user record.
type Session struct {
	Token        string    `json:"token,omitempty"`
	AccessToken  string    `json:"accessToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	User         Record    `json:"user,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt,omitempty"`
	SavedAt      time.Time `json:"savedAt,omitempty"`
}

// Bearer returns the token sent in the Authorization header.
func (s Session) Bearer() string {
	if s.AccessToken != "" {
		return s.AccessToken
	}
	return s.Token
}

func (s Session) Empty() bool { return s.Bearer() == "" }

// Expired reports whether the token's exp claim has passed. Unknown expiry is never expired.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// UserLabel returns a short display name for the logged-in user.
func (s Session) UserLabel() string {
	for _, k := range []string{"full_name", "name", "email", "id"} {
		if v, ok := s.User[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
