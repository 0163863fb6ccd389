package domain

import "time"

// Theme constants for UI preferences.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// User is a storefront account. Authentication is mocked: sessions are
// issued without real credential verification.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Preferences holds per-user UI state that survives across sessions.
// The User field is the serialized session record, when signed in.
type Preferences struct {
	Theme string `json:"theme"`
	User  *User  `json:"user,omitempty"`
}

// DefaultPreferences returns the preferences applied to a fresh session.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight}
}

// ValidTheme reports whether the given theme name is supported.
func ValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}
