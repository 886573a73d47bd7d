package postgres

import (
	"errors"
	"fmt"
	"testing"

	"go-website-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(pgx.ErrNoRows), domain.ErrUserNotFound)
	assert.ErrorIs(t, translateError(fmt.Errorf("scan: %w", pgx.ErrNoRows)), domain.ErrUserNotFound)
	assert.ErrorIs(t, translateError(&pgconn.PgError{Code: pgUniqueViolation}), domain.ErrUserExists)

	other := errors.New("connection reset")
	err := translateError(other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, domain.ErrUserExists)
}

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, schemaSQL, "email         VARCHAR(254) NOT NULL UNIQUE")
}
