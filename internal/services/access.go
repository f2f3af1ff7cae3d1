package services

import "electionhub/internal/domain"

// RequireOrganizer returns domain.ErrForbidden unless the caller holds the organizer role.
func RequireOrganizer(caller domain.Caller) error {
	if !caller.IsOrganizer() {
		return domain.ErrForbidden
	}
	return nil
}

// RequireOwner returns domain.ErrForbidden unless the caller created the event.
func RequireOwner(caller domain.Caller, event *domain.Event) error {
	if !caller.Owns(event) {
		return domain.ErrForbidden
	}
	return nil
}

func requireAuthenticated(caller domain.Caller) error {
	if caller.UserID == "" {
		return domain.ErrUnauthorized
	}
	return nil
}
