// Package memory implements the repositories in process. A single mutex
// guards all tables, so the (event, participant) vote check and insert are
// one atomic step, matching the unique constraint of the SQL store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"electionhub/internal/domain"
)

// Store holds every table. Use Events, Votes and Users for the repository views.
type Store struct {
	mu     sync.RWMutex
	events map[string]*domain.Event
	votes  map[string]*domain.Vote
	// ballots indexes votes by event id then participant id.
	ballots map[string]map[string]string
	users   map[string]*domain.User
	emails  map[string]string
	now     func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		events:  make(map[string]*domain.Event),
		votes:   make(map[string]*domain.Vote),
		ballots: make(map[string]map[string]string),
		users:   make(map[string]*domain.User),
		emails:  make(map[string]string),
		now:     time.Now,
	}
}

// Events returns the event repository view.
func (s *Store) Events() domain.EventRepository { return &eventRepository{s} }

// Votes returns the vote repository view.
func (s *Store) Votes() domain.VoteRepository { return &voteRepository{s} }

// Users returns the user repository view.
func (s *Store) Users() domain.UserRepository { return &userRepository{s} }

type eventRepository struct{ s *Store }

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	r.s.events[e.ID] = e.Clone()
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e.Clone(), nil
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	start, end := params.Window(len(all))
	return all[start:end], len(all), nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event, optionsChanged bool) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.events[e.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	next := e.Clone()
	if optionsChanged {
		if len(r.s.ballots[e.ID]) > 0 {
			return nil, domain.ErrVotingInProgress
		}
	} else {
		next.Options = append([]domain.Option(nil), current.Options...)
	}
	next.CreatedBy = current.CreatedBy
	next.CreatedAt = current.CreatedAt
	r.s.events[e.ID] = next
	return next.Clone(), nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.events, id)
	// ON DELETE CASCADE
	r.s.deleteVotesLocked(id)
	return nil
}

type voteRepository struct{ s *Store }

func (r *voteRepository) Insert(ctx context.Context, v *domain.Vote) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[v.EventID]
	if !ok {
		return domain.ErrNotFound
	}
	if !e.HasOption(v.OptionID) {
		return domain.ErrInvalidOption
	}
	byParticipant := r.s.ballots[v.EventID]
	if byParticipant == nil {
		byParticipant = make(map[string]string)
		r.s.ballots[v.EventID] = byParticipant
	}
	if _, exists := byParticipant[v.ParticipantID]; exists {
		return domain.ErrDuplicateVote
	}
	v.ID = uuid.NewString()
	v.CreatedAt = r.s.now()
	stored := *v
	r.s.votes[v.ID] = &stored
	byParticipant[v.ParticipantID] = v.ID
	return nil
}

func (r *voteRepository) Exists(ctx context.Context, eventID, participantID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.ballots[eventID][participantID]
	return ok, nil
}

func (r *voteRepository) GetByParticipant(ctx context.Context, eventID, participantID string) (*domain.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.ballots[eventID][participantID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	v := *r.s.votes[id]
	return &v, nil
}

func (r *voteRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.ballots[eventID]), nil
}

func (r *voteRepository) CountsByEvent(ctx context.Context, eventID string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := make(map[string]int)
	for _, id := range r.s.ballots[eventID] {
		counts[r.s.votes[id].OptionID]++
	}
	return counts, nil
}

func (r *voteRepository) VotersByEvent(ctx context.Context, eventID string) (map[string][]domain.Voter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	votes := make([]*domain.Vote, 0, len(r.s.ballots[eventID]))
	for _, id := range r.s.ballots[eventID] {
		votes = append(votes, r.s.votes[id])
	}
	sort.Slice(votes, func(i, j int) bool { return votes[i].CreatedAt.Before(votes[j].CreatedAt) })
	voters := make(map[string][]domain.Voter)
	for _, v := range votes {
		voter := domain.Voter{UserID: v.ParticipantID}
		if u, ok := r.s.users[v.ParticipantID]; ok {
			voter.Name = u.Name
			voter.Email = u.Email
		}
		voters[v.OptionID] = append(voters[v.OptionID], voter)
	}
	return voters, nil
}

func (r *voteRepository) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.deleteVotesLocked(eventID), nil
}

func (s *Store) deleteVotesLocked(eventID string) int64 {
	var n int64
	for _, id := range s.ballots[eventID] {
		delete(s.votes, id)
		n++
	}
	delete(s.ballots, eventID)
	return n
}

type userRepository struct{ s *Store }

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, exists := r.s.emails[key]; exists {
		return domain.ErrDuplicateEmail
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	stored := *u
	r.s.users[u.ID] = &stored
	r.s.emails[key] = u.ID
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.emails[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := *r.s.users[id]
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, hash, salt string, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	u.Salt = salt
	u.UpdatedAt = updatedAt
	return nil
}
