package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of capabilities a caller can hold.
// The zero value is RoleParticipant.
type Role int

const (
	RoleParticipant Role = iota
	RoleOrganizer
)

const (
	roleParticipantCode = "participant"
	roleOrganizerCode   = "organizer"
)

// ParseRole converts a role code into a Role. Empty input is not accepted.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case roleParticipantCode:
		return RoleParticipant, nil
	case roleOrganizerCode:
		return RoleOrganizer, nil
	}
	return RoleParticipant, fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	switch r {
	case RoleParticipant:
		return roleParticipantCode
	case RoleOrganizer:
		return roleOrganizerCode
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// IsValid reports whether r is one of the declared roles.
func (r Role) IsValid() bool {
	return r == RoleParticipant || r == RoleOrganizer
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Caller is the identity asserted by the identity provider for one request.
type Caller struct {
	UserID string
	Role   Role
}

// IsOrganizer reports whether the caller holds the organizer role.
func (c Caller) IsOrganizer() bool {
	return c.Role == RoleOrganizer
}

// Owns reports whether the caller created the event.
func (c Caller) Owns(e *Event) bool {
	return e != nil && c.UserID != "" && c.UserID == e.CreatedBy
}
