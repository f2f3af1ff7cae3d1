package domain

import (
	"context"
	"time"
)

// Status is the lifecycle state of an event, derived from its voting window.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Option is one selectable choice within an Event.
// swagger:model Option
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event is a timed, single-choice election.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Options     []Option   `json:"options"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OptionIndex returns the position of the option with the given id, or -1.
func (e *Event) OptionIndex(optionID string) int {
	for i, o := range e.Options {
		if o.ID == optionID {
			return i
		}
	}
	return -1
}

// HasOption reports whether optionID is one of the event's current options.
func (e *Event) HasOption(optionID string) bool {
	return e.OptionIndex(optionID) >= 0
}

// OptionNames returns the option display names in order.
func (e *Event) OptionNames() []string {
	names := make([]string, len(e.Options))
	for i, o := range e.Options {
		names[i] = o.Name
	}
	return names
}

// Clone returns a deep copy of the event.
func (e *Event) Clone() *Event {
	c := *e
	c.Options = append([]Option(nil), e.Options...)
	if e.EndAt != nil {
		end := *e.EndAt
		c.EndAt = &end
	}
	return &c
}

// EventView is an event together with its status at read time.
// swagger:model EventView
type EventView struct {
	Event
	Status Status `json:"status"`
}

// OrganizerEventView adds the total vote count to an EventView.
// swagger:model OrganizerEventView
type OrganizerEventView struct {
	EventView
	VoteCount int `json:"vote_count"`
}

// OptionCount is the public per-option tally.
type OptionCount struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	VoteCount int    `json:"vote_count"`
}

// EventDetail is the public single-event view: counts only, no voter identities.
// swagger:model EventDetail
type EventDetail struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	StartAt     time.Time     `json:"start_at"`
	EndAt       *time.Time    `json:"end_at"`
	CreatedBy   string        `json:"created_by"`
	CreatedAt   time.Time     `json:"created_at"`
	Status      Status        `json:"status"`
	Options     []OptionCount `json:"options"`
	TotalVotes  int           `json:"total_votes"`
}

// NewEventInput is the organizer-supplied payload for a new event.
type NewEventInput struct {
	Title       string
	Description string
	Options     []string
	StartAt     *time.Time
	EndAt       *time.Time
}

// EventPatch holds optional changes to an event. Nil fields are left unchanged.
type EventPatch struct {
	Title       *string
	Description *string
	Options     *[]string
	StartAt     *time.Time
	EndAt       *time.Time
	ClearEndAt  bool
}

// HasOptionChange reports whether the patch replaces the option list.
func (p EventPatch) HasOptionChange() bool {
	return p.Options != nil
}

// IsEmpty reports whether the patch changes nothing.
func (p EventPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Options == nil &&
		p.StartAt == nil && p.EndAt == nil && !p.ClearEndAt
}

// EventRepository defines the interface for event and option storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	ListAll(ctx context.Context) ([]*Event, error)
	// Update writes the merged event. When optionsChanged is true the stored
	// option list is replaced by event.Options.
	Update(ctx context.Context, event *Event, optionsChanged bool) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// ElectionService is the election engine consumed by the HTTP adapters.
type ElectionService interface {
	CreateEvent(ctx context.Context, caller Caller, input NewEventInput) (*EventView, error)
	ListEvents(ctx context.Context, params PaginationParams) ([]*EventView, int, error)
	ListOrganizerEvents(ctx context.Context, caller Caller) ([]*OrganizerEventView, error)
	GetEvent(ctx context.Context, eventID string) (*EventDetail, error)
	UpdateEvent(ctx context.Context, caller Caller, eventID string, patch EventPatch) (*EventView, error)
	DeleteEvent(ctx context.Context, caller Caller, eventID string) error
	CastVote(ctx context.Context, caller Caller, eventID, optionID string) (*Vote, error)
	MyVote(ctx context.Context, caller Caller, eventID string) (*Vote, error)
	GetResults(ctx context.Context, caller Caller, eventID string) (*Results, error)
}
