package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/contracts-admin/internal/model"
	"github.com/nurpe/contracts-admin/internal/session"
)

// SessionRepository is the Postgres session.Store.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ session.Store = (*SessionRepository)(nil)

func (r *SessionRepository) Save(ctx context.Context, rec session.Record) error {
	user, err := json.Marshal(rec.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO admin_sessions (id, token, user_data, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			token = EXCLUDED.token,
			user_data = EXCLUDED.user_data,
			expires_at = EXCLUDED.expires_at
	`, rec.ID, rec.Token, string(user), rec.ExpiresAt, rec.CreatedAt).Error
}

func (r *SessionRepository) Load(ctx context.Context, id string) (*session.Record, error) {
	var row struct {
		ID        string
		Token     string
		UserData  []byte
		ExpiresAt time.Time
		CreatedAt time.Time
	}

	res := r.db.WithContext(ctx).Raw(`
		SELECT id, token, user_data, expires_at, created_at
		FROM admin_sessions
		WHERE id = ?
	`, id).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 || row.ID == "" {
		return nil, session.ErrNotFound
	}

	var user model.User
	if len(row.UserData) > 0 {
		if err := json.Unmarshal(row.UserData, &user); err != nil {
			return nil, fmt.Errorf("decode session user: %w", err)
		}
	}
	return &session.Record{
		ID:        row.ID,
		Token:     row.Token,
		User:      user,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM admin_sessions WHERE id = ?`, id).Error
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM admin_sessions WHERE expires_at <= ?`, now)
	return res.RowsAffected, res.Error
}
