package repo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm", gorm.ErrDuplicatedKey, true},
		{"pgx", &pgconn.PgError{Code: "23505"}, true},
		{"pgx other", &pgconn.PgError{Code: "23503"}, false},
		{"pq wrapped", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"pq other", &pq.Error{Code: "42P01"}, false},
		{"sqlite", errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"), true},
		{"other", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isUniqueViolation(tc.err))
		})
	}
}

func TestContainsPattern(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "%ui kit%", containsPattern("UI Kit"))
	assert.Equal(t, `%50\%\_off%`, containsPattern("50%_OFF"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}
