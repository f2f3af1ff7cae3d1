package domain

import (
	"context"
	"sort"
	"time"
)

// Vote is a single participant's immutable choice of one option within one event.
// swagger:model Vote
type Vote struct {
	ID            string    `json:"id"`
	EventID       string    `json:"event_id"`
	ParticipantID string    `json:"participant_id"`
	OptionID      string    `json:"option_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Voter identifies a participant in the organizer results view.
type Voter struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// OptionTally is the aggregated count for one option.
type OptionTally struct {
	OptionID string  `json:"option_id"`
	Option   string  `json:"option"`
	Count    int     `json:"count"`
	Voters   []Voter `json:"voters"`
}

// EventSummary is the event header returned with results.
type EventSummary struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	Status      Status     `json:"status"`
}

// Results is the organizer view of an event's tally. Tallies follow option order.
// swagger:model Results
type Results struct {
	Event      EventSummary  `json:"event"`
	Results    []OptionTally `json:"results"`
	TotalVotes int           `json:"total_votes"`
}

// Ranked returns a copy of tallies sorted by count descending.
// Ties keep their original (option insertion) order.
func Ranked(tallies []OptionTally) []OptionTally {
	out := append([]OptionTally(nil), tallies...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Leading returns the top-ranked tally, or nil when no votes were cast.
func Leading(tallies []OptionTally) *OptionTally {
	ranked := Ranked(tallies)
	if len(ranked) == 0 || ranked[0].Count == 0 {
		return nil
	}
	return &ranked[0]
}

// VoteRepository defines the interface for vote storage.
type VoteRepository interface {
	// Insert atomically stores v, or returns ErrDuplicateVote when a vote for
	// (v.EventID, v.ParticipantID) already exists. ID and CreatedAt are set on success.
	Insert(ctx context.Context, v *Vote) error
	Exists(ctx context.Context, eventID, participantID string) (bool, error)
	GetByParticipant(ctx context.Context, eventID, participantID string) (*Vote, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	// CountsByEvent groups the event's votes by option id.
	CountsByEvent(ctx context.Context, eventID string) (map[string]int, error)
	// VotersByEvent groups the event's voters by option id.
	VotersByEvent(ctx context.Context, eventID string) (map[string][]Voter, error)
	DeleteByEventID(ctx context.Context, eventID string) (int64, error)
}

// TallyCache holds eventually-consistent per-option counts. Vote rows stay
// the source of truth; a miss or error falls back to the store.
//
// Each Invalidate bumps the event's generation. Get reports the generation
// on a miss and Set stores counts only while that generation is current,
// so a fill that raced a vote is dropped instead of cached.
type TallyCache interface {
	Get(ctx context.Context, eventID string) (counts map[string]int, gen int64, ok bool, err error)
	Set(ctx context.Context, eventID string, gen int64, counts map[string]int) error
	Invalidate(ctx context.Context, eventID string) error
}
