package video

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"reelvault/internal/database"
)

const pgUniqueViolation = "23505"

type Repository interface {
	Create(ctx context.Context, v *Video) error
	ListAll(ctx context.Context) ([]*Video, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create writes one record on a connection held only for this call.
func (r *repository) Create(ctx context.Context, v *Video) error {
	if v.PublicID == "" {
		return ErrMissingPublicID
	}
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return conn.Create(v).Error
	})
	if isUniqueViolation(err) {
		return ErrDuplicatePublicID
	}
	return err
}

// ListAll returns every record, newest first.
func (r *repository) ListAll(ctx context.Context) ([]*Video, error) {
	videos := make([]*Video, 0)
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return conn.Order("created_at DESC").Order("id DESC").Find(&videos).Error
	})
	return videos, err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
