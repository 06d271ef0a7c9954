package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/abdul-hamid-achik/pathpick/packages/verify"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open("sqlite://" + filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func cfgFor(url, path string) *request.Config {
	return &request.Config{Method: request.MethodGet, URL: url, SelectedPath: path}
}

func TestStore_RecordAndList(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	ok := &verify.TestResult{Success: true, Value: float64(225), Status: 200, Duration: 120 * time.Millisecond, CheckedAt: base}
	entry, err := store.Record(ctx, "btc", cfgFor("https://api.example.com/price", "output.price"), ok)
	require.NoError(t, err)
	_, err = uuid.Parse(entry.ID)
	assert.NoError(t, err)

	failed := &verify.TestResult{Success: false, Error: "no value found", Kind: verify.FailurePathMissing, Status: 200, CheckedAt: base.Add(time.Minute)}
	_, err = store.Record(ctx, "", cfgFor("https://api.example.com/price", "output.price"), failed)
	require.NoError(t, err)

	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.False(t, entries[0].Success)
	assert.Equal(t, verify.FailurePathMissing, entries[0].Kind)
	assert.Equal(t, "no value found", entries[0].Error)

	assert.True(t, entries[1].Success)
	assert.Equal(t, "btc", entries[1].Name)
	assert.Equal(t, "225", entries[1].Value)
	assert.Equal(t, 120*time.Millisecond, entries[1].Duration)
	assert.Equal(t, base, entries[1].CheckedAt)
	assert.Equal(t, "GET", entries[1].Method)
}

func TestStore_ListLimit(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := store.Record(ctx, "", cfgFor("https://a.example.com", "x"), &verify.TestResult{Success: true, Value: i})
		require.NoError(t, err)
	}

	entries, err := store.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestStore_ForPath(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	_, err := store.Record(ctx, "", cfgFor("https://a.example.com", "x"), &verify.TestResult{Success: true, Value: "1"})
	require.NoError(t, err)
	_, err = store.Record(ctx, "", cfgFor("https://a.example.com", "y"), &verify.TestResult{Success: true, Value: "2"})
	require.NoError(t, err)
	_, err = store.Record(ctx, "", cfgFor("https://b.example.com", "x"), &verify.TestResult{Success: true, Value: "3"})
	require.NoError(t, err)

	entries, err := store.ForPath(ctx, "https://a.example.com", "x", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, `"1"`, entries[0].Value)

	entries, err = store.ForPath(ctx, "https://c.example.com", "x", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_RecordRequiresInputs(t *testing.T) {
	store := openTemp(t)
	_, err := store.Record(context.Background(), "", nil, &verify.TestResult{})
	assert.Error(t, err)
	_, err = store.Record(context.Background(), "", cfgFor("https://a.example.com", "x"), nil)
	assert.Error(t, err)
}

func TestOpen_ConnectionForms(t *testing.T) {
	dir := t.TempDir()
	for _, conn := range []string{
		filepath.Join(dir, "plain.db"),
		"sqlite:" + filepath.Join(dir, "colon.db"),
		":memory:",
	} {
		store, err := Open(conn)
		require.NoError(t, err, conn)
		_, err = store.Record(context.Background(), "", cfgFor("https://a.example.com", "x"), &verify.TestResult{Success: true, Value: 1})
		assert.NoError(t, err, conn)
		assert.NoError(t, store.Close())
	}
}

func TestParseConnectionString(t *testing.T) {
	assert.Equal(t, "/tmp/a.db", parseConnectionString("sqlite:///tmp/a.db"))
	assert.Equal(t, "./a.db", parseConnectionString("sqlite:./a.db"))
	assert.Equal(t, "a.db", parseConnectionString("  a.db "))
}
