package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"electionhub/internal/domain"
	"electionhub/internal/validation"
)

const defaultStoreTimeout = 5 * time.Second

// ElectionOptions tunes the election engine.
type ElectionOptions struct {
	// StoreTimeout bounds every store call made by one operation.
	StoreTimeout time.Duration
	// EnforceVotingWindow rejects votes outside [StartAt, EndAt] with domain.ErrVotingClosed.
	EnforceVotingWindow bool
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type electionService struct {
	events        domain.EventRepository
	votes         domain.VoteRepository
	cache         domain.TallyCache
	storeTimeout  time.Duration
	enforceWindow bool
	now           func() time.Time
	logger        *slog.Logger
}

// NewElectionService returns the election engine. cache may be nil.
func NewElectionService(events domain.EventRepository, votes domain.VoteRepository, cache domain.TallyCache, opts ElectionOptions, logger *slog.Logger) domain.ElectionService {
	if cache == nil {
		cache = nopTallyCache{}
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = defaultStoreTimeout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &electionService{
		events:        events,
		votes:         votes,
		cache:         cache,
		storeTimeout:  opts.StoreTimeout,
		enforceWindow: opts.EnforceVotingWindow,
		now:           opts.Clock,
		logger:        logger,
	}
}

// DeriveStatus computes an event's lifecycle state at now.
func DeriveStatus(now, startAt time.Time, endAt *time.Time) domain.Status {
	switch {
	case now.Before(startAt):
		return domain.StatusUpcoming
	case endAt != nil && now.After(*endAt):
		return domain.StatusCompleted
	default:
		return domain.StatusActive
	}
}

func (s *electionService) CreateEvent(ctx context.Context, caller domain.Caller, input domain.NewEventInput) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := RequireOrganizer(caller); err != nil {
		return nil, err
	}
	now := s.now()
	startAt := now
	if input.StartAt != nil {
		startAt = *input.StartAt
	}
	if err := domain.NewValidationError(validation.EventPayload(input.Title, input.Description, input.Options, &startAt, input.EndAt, now)); err != nil {
		return nil, err
	}

	event := &domain.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Options:     newOptions(input.Options),
		StartAt:     startAt,
		EndAt:       input.EndAt,
		CreatedBy:   caller.UserID,
		CreatedAt:   now,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, s.storeError(ctx, "create event", "", err)
	}
	s.logger.InfoContext(ctx, "event created", "event_id", event.ID, "created_by", caller.UserID, "options", len(event.Options))
	return s.view(event, now), nil
}

func (s *electionService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.EventView, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	events, total, err := s.events.List(ctx, params)
	if err != nil {
		return nil, 0, s.storeError(ctx, "list events", "", err)
	}
	now := s.now()
	views := make([]*domain.EventView, len(events))
	for i, e := range events {
		views[i] = s.view(e, now)
	}
	return views, total, nil
}

func (s *electionService) ListOrganizerEvents(ctx context.Context, caller domain.Caller) ([]*domain.OrganizerEventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := RequireOrganizer(caller); err != nil {
		return nil, err
	}
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, s.storeError(ctx, "list organizer events", "", err)
	}
	now := s.now()
	out := make([]*domain.OrganizerEventView, 0, len(events))
	for _, e := range events {
		n, err := s.votes.CountByEvent(ctx, e.ID)
		if err != nil {
			return nil, s.storeError(ctx, "list organizer events", e.ID, err)
		}
		out = append(out, &domain.OrganizerEventView{EventView: *s.view(e, now), VoteCount: n})
	}
	return out, nil
}

func (s *electionService) GetEvent(ctx context.Context, eventID string) (*domain.EventDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, s.storeError(ctx, "get event", eventID, err)
	}
	counts, err := s.counts(ctx, eventID)
	if err != nil {
		return nil, s.storeError(ctx, "get event", eventID, err)
	}

	detail := &domain.EventDetail{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		StartAt:     event.StartAt,
		EndAt:       event.EndAt,
		CreatedBy:   event.CreatedBy,
		CreatedAt:   event.CreatedAt,
		Status:      DeriveStatus(s.now(), event.StartAt, event.EndAt),
		Options:     make([]domain.OptionCount, len(event.Options)),
	}
	for i, o := range event.Options {
		detail.Options[i] = domain.OptionCount{ID: o.ID, Name: o.Name, VoteCount: counts[o.ID]}
		detail.TotalVotes += counts[o.ID]
	}
	return detail, nil
}

// counts reads the tally cache and falls back to the vote store on a miss or cache error.
func (s *electionService) counts(ctx context.Context, eventID string) (map[string]int, error) {
	counts, gen, ok, cacheErr := s.cache.Get(ctx, eventID)
	if cacheErr != nil {
		s.logger.WarnContext(ctx, "tally cache read failed", "event_id", eventID, "err", cacheErr)
	}
	if ok && cacheErr == nil {
		return counts, nil
	}
	counts, err := s.votes.CountsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if cacheErr != nil {
		return counts, nil
	}
	if err := s.cache.Set(ctx, eventID, gen, counts); err != nil {
		s.logger.WarnContext(ctx, "tally cache write failed", "event_id", eventID, "err", err)
	}
	return counts, nil
}

func (s *electionService) GetResults(ctx context.Context, caller domain.Caller, eventID string) (*domain.Results, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := RequireOrganizer(caller); err != nil {
		return nil, err
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, s.storeError(ctx, "get results", eventID, err)
	}
	// counts come from the same read as the voter lists
	voters, err := s.votes.VotersByEvent(ctx, eventID)
	if err != nil {
		return nil, s.storeError(ctx, "get results", eventID, err)
	}

	res := &domain.Results{
		Event: domain.EventSummary{
			ID:          event.ID,
			Title:       event.Title,
			Description: event.Description,
			StartAt:     event.StartAt,
			EndAt:       event.EndAt,
			Status:      DeriveStatus(s.now(), event.StartAt, event.EndAt),
		},
		Results: make([]domain.OptionTally, len(event.Options)),
	}
	for i, o := range event.Options {
		list := voters[o.ID]
		if list == nil {
			list = []domain.Voter{}
		}
		res.Results[i] = domain.OptionTally{OptionID: o.ID, Option: o.Name, Count: len(list), Voters: list}
		res.TotalVotes += len(list)
	}
	return res, nil
}

func (s *electionService) UpdateEvent(ctx context.Context, caller domain.Caller, eventID string, patch domain.EventPatch) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := RequireOrganizer(caller); err != nil {
		return nil, err
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, s.storeError(ctx, "update event", eventID, err)
	}
	now := s.now()
	if patch.IsEmpty() {
		return s.view(event, now), nil
	}

	if patch.HasOptionChange() {
		n, err := s.votes.CountByEvent(ctx, eventID)
		if err != nil {
			return nil, s.storeError(ctx, "update event", eventID, err)
		}
		if n > 0 {
			return nil, domain.ErrVotingInProgress
		}
	}

	merged := event.Clone()
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.StartAt != nil {
		merged.StartAt = *patch.StartAt
	}
	if patch.EndAt != nil {
		end := *patch.EndAt
		merged.EndAt = &end
	}
	if patch.ClearEndAt {
		merged.EndAt = nil
	}
	names := merged.OptionNames()
	if patch.HasOptionChange() {
		names = *patch.Options
	}
	violations := validation.EventUpdate(merged.Title, merged.Description, names, merged.StartAt, merged.EndAt, patch.StartAt != nil, now)
	if err := domain.NewValidationError(violations); err != nil {
		return nil, err
	}
	merged.Title = strings.TrimSpace(merged.Title)
	merged.Description = strings.TrimSpace(merged.Description)
	if patch.HasOptionChange() {
		merged.Options = newOptions(names)
	}

	updated, err := s.events.Update(ctx, merged, patch.HasOptionChange())
	if err != nil {
		return nil, s.storeError(ctx, "update event", eventID, err)
	}
	s.invalidate(ctx, eventID)
	s.logger.InfoContext(ctx, "event updated", "event_id", eventID, "options_replaced", patch.HasOptionChange())
	return s.view(updated, now), nil
}

func (s *electionService) DeleteEvent(ctx context.Context, caller domain.Caller, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := RequireOrganizer(caller); err != nil {
		return err
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return s.storeError(ctx, "delete event", eventID, err)
	}
	if err := RequireOwner(caller, event); err != nil {
		return err
	}
	removed, err := s.votes.DeleteByEventID(ctx, eventID)
	if err != nil {
		return s.storeError(ctx, "delete event", eventID, err)
	}
	if err := s.events.Delete(ctx, eventID); err != nil {
		return s.storeError(ctx, "delete event", eventID, err)
	}
	s.invalidate(ctx, eventID)
	s.logger.InfoContext(ctx, "event deleted", "event_id", eventID, "votes_removed", removed)
	return nil
}

func (s *electionService) CastVote(ctx context.Context, caller domain.Caller, eventID, optionID string) (*domain.Vote, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, s.storeError(ctx, "cast vote", eventID, err)
	}
	if !event.HasOption(optionID) {
		return nil, domain.ErrInvalidOption
	}
	if s.enforceWindow && DeriveStatus(s.now(), event.StartAt, event.EndAt) != domain.StatusActive {
		return nil, domain.ErrVotingClosed
	}

	voted, err := s.votes.Exists(ctx, eventID, caller.UserID)
	if err != nil {
		return nil, s.storeError(ctx, "cast vote", eventID, err)
	}
	if voted {
		return nil, domain.ErrDuplicateVote
	}
	// Insert is the authority on duplicates; Exists only spares the write.
	vote := &domain.Vote{EventID: event.ID, ParticipantID: caller.UserID, OptionID: optionID}
	if err := s.votes.Insert(ctx, vote); err != nil {
		return nil, s.storeError(ctx, "cast vote", eventID, err)
	}
	s.invalidate(ctx, eventID)
	s.logger.InfoContext(ctx, "vote cast", "event_id", eventID, "option_id", optionID)
	return vote, nil
}

func (s *electionService) MyVote(ctx context.Context, caller domain.Caller, eventID string) (*domain.Vote, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}
	vote, err := s.votes.GetByParticipant(ctx, eventID, caller.UserID)
	if err != nil {
		return nil, s.storeError(ctx, "my vote", eventID, err)
	}
	return vote, nil
}

func (s *electionService) view(e *domain.Event, now time.Time) *domain.EventView {
	return &domain.EventView{Event: *e, Status: DeriveStatus(now, e.StartAt, e.EndAt)}
}

func (s *electionService) invalidate(ctx context.Context, eventID string) {
	if err := s.cache.Invalidate(ctx, eventID); err != nil {
		s.logger.WarnContext(ctx, "tally cache invalidate failed", "event_id", eventID, "err", err)
	}
}

var domainErrors = []error{
	domain.ErrValidationFailed,
	domain.ErrNotFound,
	domain.ErrForbidden,
	domain.ErrUnauthorized,
	domain.ErrDuplicateVote,
	domain.ErrInvalidOption,
	domain.ErrVotingInProgress,
	domain.ErrVotingClosed,
	domain.ErrStoreUnavailable,
}

// storeError passes domain errors through and reports everything else,
// timeouts included, as domain.ErrStoreUnavailable.
func (s *electionService) storeError(ctx context.Context, op, eventID string, err error) error {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	s.logger.ErrorContext(ctx, "store call failed", "op", op, "event_id", eventID, "err", err)
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}

func newOptions(names []string) []domain.Option {
	opts := make([]domain.Option, len(names))
	for i, n := range names {
		opts[i] = domain.Option{ID: uuid.NewString(), Name: strings.TrimSpace(n)}
	}
	return opts
}

type nopTallyCache struct{}

func (nopTallyCache) Get(context.Context, string) (map[string]int, int64, bool, error) {
	return nil, 0, false, nil
}

func (nopTallyCache) Set(context.Context, string, int64, map[string]int) error { return nil }

func (nopTallyCache) Invalidate(context.Context, string) error { return nil }
