package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/emojiabc/internal/logger"
	"github.com/vytor/emojiabc/internal/models"
	"github.com/vytor/emojiabc/internal/repository"
)

type sessionRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSessionRepository creates a SQLite-backed SessionRepository.
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db, now: time.Now}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*models.SessionState, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	state := models.SessionState{History: []models.HistoryRecord{}}

	query, args, err := sqlBuilder.Select("current_letter").
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&state.CurrentLetter); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found")
			return nil, nil
		}
		log.Error("failed to get session: %v", err)
		return nil, err
	}

	query, args, err = sqlBuilder.Select("letter", "emoji", "emoji_name", "timestamp", "error_count", "time_taken").
		From("history_records").
		Where(squirrel.Eq{"session_id": id}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query history: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.HistoryRecord
		var timeTaken sql.NullFloat64
		if err := rows.Scan(&rec.Letter, &rec.Emoji, &rec.EmojiName, &rec.Timestamp, &rec.Error, &timeTaken); err != nil {
			log.Error("failed to scan history row: %v", err)
			return nil, err
		}
		if timeTaken.Valid {
			t := timeTaken.Float64
			rec.TimeTaken = &t
		}
		state.History = append(state.History, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("loaded session: current_letter=%q, history=%d", state.CurrentLetter, len(state.History))
	return &state, nil
}

func (r *sessionRepository) Save(ctx context.Context, id string, state models.SessionState) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	now := r.now().Unix()

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		upsert := sqlBuilder.Insert("sessions").
			Columns("id", "current_letter", "created_at", "updated_at").
			Values(id, state.CurrentLetter, now, now).
			Suffix("ON CONFLICT(id) DO UPDATE SET current_letter = excluded.current_letter, updated_at = excluded.updated_at")
		if _, err := exec(ctx, tx, upsert); err != nil {
			return err
		}

		if _, err := exec(ctx, tx, sqlBuilder.Delete("history_records").Where(squirrel.Eq{"session_id": id})); err != nil {
			return err
		}
		if len(state.History) == 0 {
			return nil
		}

		insert := sqlBuilder.Insert("history_records").
			Columns("session_id", "position", "letter", "emoji", "emoji_name", "timestamp", "error_count", "time_taken")
		for i, rec := range state.History {
			var timeTaken sql.NullFloat64
			if rec.TimeTaken != nil {
				timeTaken = sql.NullFloat64{Float64: *rec.TimeTaken, Valid: true}
			}
			insert = insert.Values(id, i, rec.Letter, rec.Emoji, rec.EmojiName, rec.Timestamp, rec.Error, timeTaken)
		}
		_, err := exec(ctx, tx, insert)
		return err
	})
	if err != nil {
		log.Error("failed to save session: %v", err)
		return err
	}
	log.Debug("saved session: history=%d", len(state.History))
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := exec(ctx, tx, sqlBuilder.Delete("history_records").Where(squirrel.Eq{"session_id": id})); err != nil {
			return err
		}
		_, err := exec(ctx, tx, sqlBuilder.Delete("sessions").Where(squirrel.Eq{"id": id}))
		return err
	})
	if err != nil {
		log.Error("failed to delete session: %v", err)
	}
	return err
}

func (r *sessionRepository) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("deleting sessions idle since %s", cutoff.Format(time.RFC3339))

	var removed int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		history := sqlBuilder.Delete("history_records").
			Where("session_id IN (SELECT id FROM sessions WHERE updated_at < ?)", cutoff.Unix())
		if _, err := exec(ctx, tx, history); err != nil {
			return err
		}
		res, err := exec(ctx, tx, sqlBuilder.Delete("sessions").Where(squirrel.Lt{"updated_at": cutoff.Unix()}))
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Error("failed to delete idle sessions: %v", err)
		return 0, err
	}
	return removed, nil
}
