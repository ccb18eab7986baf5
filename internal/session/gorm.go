package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the row layout of the SQL session store.
type Record struct {
	Token     string    `gorm:"primaryKey;size:128"`
	UserID    uint      `gorm:"index;not null"`
	Email     string    `gorm:"size:255;not null"`
	IsAdmin   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

func (Record) TableName() string {
	return "sessions"
}

type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

func (g *GormStore) Get(ctx context.Context, token string) (*Session, error) {
	var rec Record
	err := g.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, g.now().UTC()).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Session{
		Token:     rec.Token,
		UserID:    rec.UserID,
		Email:     rec.Email,
		IsAdmin:   rec.IsAdmin,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (g *GormStore) Set(ctx context.Context, s *Session) error {
	rec := Record{
		Token:     s.Token,
		UserID:    s.UserID,
		Email:     s.Email,
		IsAdmin:   s.IsAdmin,
		CreatedAt: s.CreatedAt.UTC(),
		ExpiresAt: s.ExpiresAt.UTC(),
	}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
}

func (g *GormStore) Delete(ctx context.Context, token string) error {
	return g.db.WithContext(ctx).Where("token = ?", token).Delete(&Record{}).Error
}

func (g *GormStore) Expire(ctx context.Context, token string, ttl time.Duration) error {
	now := g.now().UTC()
	res := g.db.WithContext(ctx).Model(&Record{}).
		Where("token = ? AND expires_at > ?", token, now).
		Update("expires_at", now.Add(ttl))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) DeleteExpired(ctx context.Context) (int64, error) {
	res := g.db.WithContext(ctx).Where("expires_at <= ?", g.now().UTC()).Delete(&Record{})
	return res.RowsAffected, res.Error
}

// Run deletes expired rows every interval until ctx is cancelled.
func (g *GormStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = g.DeleteExpired(ctx)
		}
	}
}
