// Package users resolves user profiles for session personalization.
// The in-memory directory stands in for a CRM integration; unknown users
// resolve to a generic retail profile rather than an error.
package users

import "sync"

// Profile is the slice of user data the guard personalizes sessions with.
type Profile struct {
	Name    string `json:"name"`
	Segment string `json:"segment"`
}

// DefaultProfile is returned for users the directory does not know.
var DefaultProfile = Profile{Name: "Valued Customer", Segment: "retail"}

// Directory maps session IDs to user profiles.
type Directory struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{profiles: make(map[string]Profile)}
}

// Seed registers a known profile for a session.
func (d *Directory) Seed(sessionID string, p Profile) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.profiles[sessionID] = p
}

// Lookup resolves the profile for a session, falling back to the default.
func (d *Directory) Lookup(sessionID string) Profile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if p, ok := d.profiles[sessionID]; ok {
		return p
	}
	return DefaultProfile
}
