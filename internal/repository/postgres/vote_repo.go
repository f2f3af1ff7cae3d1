package postgres

import (
	"context"
	"database/sql"

	"electionhub/internal/domain"
)

type voteRepository struct {
	DB *sql.DB
}

func NewVoteRepository(db *sql.DB) domain.VoteRepository {
	return &voteRepository{DB: db}
}

// Insert relies on votes_event_participant_key; there is no read-before-write.
func (r *voteRepository) Insert(ctx context.Context, v *domain.Vote) error {
	query := `
		INSERT INTO votes (event_id, participant_id, option_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query, v.EventID, v.ParticipantID, v.OptionID).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		if perr, ok := pqError(err); ok {
			switch perr.Code {
			case codeUniqueViolation:
				return domain.ErrDuplicateVote
			case codeForeignKeyViolation:
				if perr.Constraint == constraintVoteOption {
					return domain.ErrInvalidOption
				}
				return domain.ErrNotFound
			case codeInvalidTextRepr:
				return domain.ErrNotFound
			}
		}
		return err
	}
	return nil
}

func (r *voteRepository) Exists(ctx context.Context, eventID, participantID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM votes WHERE event_id = $1 AND participant_id = $2
		)
	`, eventID, participantID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *voteRepository) GetByParticipant(ctx context.Context, eventID, participantID string) (*domain.Vote, error) {
	query := `
		SELECT id, event_id, participant_id, option_id, created_at
		FROM votes
		WHERE event_id = $1 AND participant_id = $2
	`
	v := &domain.Vote{}
	err := r.DB.QueryRowContext(ctx, query, eventID, participantID).
		Scan(&v.ID, &v.EventID, &v.ParticipantID, &v.OptionID, &v.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return v, nil
}

func (r *voteRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE event_id = $1`, eventID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *voteRepository) CountsByEvent(ctx context.Context, eventID string) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT option_id, COUNT(*)
		FROM votes
		WHERE event_id = $1
		GROUP BY option_id
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var optionID string
		var n int
		if err := rows.Scan(&optionID, &n); err != nil {
			return nil, err
		}
		counts[optionID] = n
	}
	return counts, rows.Err()
}

// VotersByEvent keeps votes whose participant has no users row; only the id is known then.
func (r *voteRepository) VotersByEvent(ctx context.Context, eventID string) (map[string][]domain.Voter, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT v.option_id, v.participant_id, u.name, u.email
		FROM votes v
		LEFT JOIN users u ON u.id::text = v.participant_id
		WHERE v.event_id = $1
		ORDER BY v.created_at, v.id
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	voters := make(map[string][]domain.Voter)
	for rows.Next() {
		var optionID string
		var voter domain.Voter
		var name, email sql.NullString
		if err := rows.Scan(&optionID, &voter.UserID, &name, &email); err != nil {
			return nil, err
		}
		voter.Name = name.String
		voter.Email = email.String
		voters[optionID] = append(voters[optionID], voter)
	}
	return voters, rows.Err()
}

func (r *voteRepository) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM votes WHERE event_id = $1`, eventID)
	if err != nil {
		return 0, notFoundOr(err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
