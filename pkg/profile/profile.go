package profile

import (
	"encoding/json"
	"strconv"
)

// Normalized field names.
const (
	FieldID         = "id"
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldProfileURL = "profile_url"
	FieldAvatar     = "avatar"
	FieldEmail      = "email"
)

// Profile is a normalized user profile.
// Providers without a dedicated rule pass their payload through, so fields
// beyond ID are only guaranteed where a rule produces them.
type Profile map[string]any

// ID returns the profile identifier as a string.
// Numeric identifiers (GitHub, Twitter) are formatted without exponent.
func (p Profile) ID() string {
	return p.String(FieldID)
}

// FirstName returns the first_name field.
func (p Profile) FirstName() string { return p.String(FieldFirstName) }

// LastName returns the last_name field.
func (p Profile) LastName() string { return p.String(FieldLastName) }

// Email returns the email field.
func (p Profile) Email() string { return p.String(FieldEmail) }

// ProfileURL returns the profile_url field.
func (p Profile) ProfileURL() string { return p.String(FieldProfileURL) }

// Avatar returns the avatar URL, or "" when the provider has none.
func (p Profile) Avatar() string { return p.String(FieldAvatar) }

// String returns any scalar field formatted as a string.
func (p Profile) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
