package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is the database-backed session row.
type Record struct {
	ID         string    `gorm:"primaryKey;type:char(36)"`
	Token      string    `gorm:"type:text;not null"`
	Email      string    `gorm:"type:varchar(255);not null;index:ix_admin_sessions_email"`
	ExpiresAt  time.Time `gorm:"type:datetime(3);not null"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
	LastSeenAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Record) TableName() string { return "admin_sessions" }

// Gorm is a MySQL-backed Store.
type Gorm struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewGorm(db *gorm.DB, ttl time.Duration) *Gorm {
	// No AutoMigrate here; migrations are applied by the migration tool.
	return &Gorm{db: db, ttl: ttl}
}

func (g *Gorm) Get(ctx context.Context, id string) (*Session, error) {
	var rec Record
	err := g.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, time.Now()).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	g.db.WithContext(ctx).Model(&Record{}).
		Where("id = ?", id).
		Update("last_seen_at", time.Now())

	return &Session{ID: rec.ID, Token: rec.Token, Email: rec.Email}, nil
}

func (g *Gorm) Create(ctx context.Context, token, email string) (*Session, error) {
	now := time.Now()
	rec := Record{
		ID:         newID(),
		Token:      token,
		Email:      email,
		ExpiresAt:  now.Add(g.ttl),
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}
	return &Session{ID: rec.ID, Token: rec.Token, Email: rec.Email}, nil
}

func (g *Gorm) Delete(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Delete(&Record{}, "id = ?", id).Error
}

func newID() string { return uuid.New().String() }
