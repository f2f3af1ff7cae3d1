package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"electionhub/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// Create inserts the event and its options in one transaction.
func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO events (title, description, start_at, end_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, e.Title, e.Description, e.StartAt, nullTime(e.EndAt), e.CreatedBy, e.CreatedAt).Scan(&e.ID); err != nil {
		return err
	}
	if err := insertOptions(ctx, tx, e.ID, e.Options); err != nil {
		return err
	}
	return tx.Commit()
}

func insertOptions(ctx context.Context, tx *sql.Tx, eventID string, options []domain.Option) error {
	for i, o := range options {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO event_options (event_id, id, name, position)
			VALUES ($1, $2, $3, $4)
		`, eventID, o.ID, o.Name, i)
		if err != nil {
			return fmt.Errorf("insert option %q: %w", o.Name, err)
		}
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, description, start_at, end_at, created_by, created_at
		FROM events
		WHERE id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	if err := r.loadOptions(ctx, []*domain.Event{e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `
		SELECT id, title, description, start_at, end_at, created_by, created_at
		FROM events
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`
	events, err := r.queryEvents(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, title, description, start_at, end_at, created_by, created_at
		FROM events
		ORDER BY created_at DESC, id
	`
	return r.queryEvents(ctx, query)
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadOptions(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// loadOptions fills Options for every event with a single query.
func (r *eventRepository) loadOptions(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := make([]string, len(events))
	byID := make(map[string]*domain.Event, len(events))
	for i, e := range events {
		ids[i] = e.ID
		byID[e.ID] = e
		e.Options = []domain.Option{}
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT event_id, id, name
		FROM event_options
		WHERE event_id = ANY($1)
		ORDER BY event_id, position
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var eventID string
		var o domain.Option
		if err := rows.Scan(&eventID, &o.ID, &o.Name); err != nil {
			return err
		}
		if e, ok := byID[eventID]; ok {
			e.Options = append(e.Options, o)
		}
	}
	return rows.Err()
}

// Update writes title, description and window. With optionsChanged it also
// replaces the option rows; existing votes make that fail on votes_option_fkey,
// which is reported as domain.ErrVotingInProgress.
func (r *eventRepository) Update(ctx context.Context, e *domain.Event, optionsChanged bool) (*domain.Event, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		UPDATE events SET title = $1, description = $2, start_at = $3, end_at = $4
		WHERE id = $5
		RETURNING created_by, created_at
	`
	updated := e.Clone()
	err = tx.QueryRowContext(ctx, query, e.Title, e.Description, e.StartAt, nullTime(e.EndAt), e.ID).
		Scan(&updated.CreatedBy, &updated.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if optionsChanged {
		if _, err := tx.ExecContext(ctx, `DELETE FROM event_options WHERE event_id = $1`, e.ID); err != nil {
			if perr, ok := pqError(err); ok && perr.Code == codeForeignKeyViolation {
				return nil, domain.ErrVotingInProgress
			}
			return nil, err
		}
		if err := insertOptions(ctx, tx, e.ID, e.Options); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return notFoundOr(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var endNull sql.NullTime
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartAt, &endNull, &e.CreatedBy, &e.CreatedAt); err != nil {
		return nil, err
	}
	if endNull.Valid {
		e.EndAt = &endNull.Time
	}
	return e, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
