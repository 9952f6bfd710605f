package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real database when TEST_DB_URL is set, e.g. via docker compose.
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("TEST_DB_URL")
	if dbURL == "" {
		t.Skip("TEST_DB_URL not set")
	}

	st, err := NewPostgresStore(dbURL)
	require.NoError(t, err)
	t.Cleanup(st.Close)
	require.NoError(t, st.EnsureSchema(context.Background()))
	return st
}

func TestRecordAndSummarize(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	source := "test-" + uuid.NewString()
	now := time.Now().UTC()

	ok := Submission{ID: uuid.New(), Source: source, Events: 3, StatusCode: 200, OK: true, CreatedAt: now}
	require.NoError(t, st.RecordSubmission(ctx, ok))
	// Duplicate IDs do not double count.
	require.NoError(t, st.RecordSubmission(ctx, ok))
	require.NoError(t, st.RecordSubmission(ctx, Submission{
		ID: uuid.New(), Source: source, Events: 2, StatusCode: 500, Error: "HTTP 500", CreatedAt: now,
	}))
	// Outside the window.
	require.NoError(t, st.RecordSubmission(ctx, Submission{
		ID: uuid.New(), Source: source, Events: 7, StatusCode: 200, OK: true, CreatedAt: now.Add(-2 * time.Hour),
	}))

	sum, err := st.Summarize(ctx, source, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, Summary{Succeeded: 1, Failed: 1, Events: 3}, sum)
}

func TestRecordSubmissionRequiresIdentity(t *testing.T) {
	st := newTestStore(t)
	err := st.RecordSubmission(context.Background(), Submission{Source: "x"})
	assert.Error(t, err)
}
