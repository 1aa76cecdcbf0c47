package session

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Conceptual-Machines/game-design-team/internal/config"
	"github.com/Conceptual-Machines/game-design-team/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(&config.Config{
		SessionDir:    t.TempDir(),
		SessionSecret: "test-secret",
		Environment:   "test",
	})
}

// followUp builds a request carrying the cookies set on rec
func followUp(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	return req
}

func TestLoadWithoutCookie(t *testing.T) {
	store := newTestStore(t)

	state := store.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, state.HasBrief)
	assert.False(t, state.HasBundle)
	assert.Empty(t, state.ID)
	assert.Equal(t, models.DefaultBrief(), state.Brief)
	assert.Equal(t, models.NewOutputBundle(), state.Bundle)
}

func TestSaveRunRoundTrip(t *testing.T) {
	store := newTestStore(t)

	brief := models.DefaultBrief()
	brief.GameType = "Puzzle"
	brief.Platforms = []string{"PC", "Mobile"}
	bundle := models.NewOutputBundle()
	bundle.Story = "## Story Design\n" + strings.Repeat("A long tale. ", 1000)

	rec := httptest.NewRecorder()
	id, err := store.SaveRun(rec, httptest.NewRequest(http.MethodPost, "/generate", nil), brief, bundle)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	state := store.Load(followUp(rec))
	assert.Equal(t, id, state.ID)
	assert.True(t, state.HasBrief)
	assert.True(t, state.HasBundle)
	assert.Equal(t, brief, state.Brief)
	assert.Equal(t, bundle, state.Bundle)
}

func TestSaveKeepsSessionID(t *testing.T) {
	store := newTestStore(t)

	rec := httptest.NewRecorder()
	first, err := store.SaveRun(rec, httptest.NewRequest(http.MethodPost, "/", nil), models.DefaultBrief(), models.NewOutputBundle())
	require.NoError(t, err)

	bundle := models.NewOutputBundle()
	bundle.Set(models.SlotStory, "## Story Design\nSecond run.")
	next := httptest.NewRecorder()
	second, err := store.SaveRun(next, followUp(rec), models.DefaultBrief(), bundle)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	state := store.Load(followUp(next))
	assert.Equal(t, bundle, state.Bundle)
}

func TestLoadTamperedCookie(t *testing.T) {
	store := newTestStore(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-valid-cookie"})

	state := store.Load(req)
	assert.False(t, state.HasBundle)
	assert.Equal(t, models.DefaultBrief(), state.Brief)
}

func TestSweepRemovesExpiredSessions(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(&config.Config{SessionDir: dir, SessionSecret: "test-secret"})

	now := time.Now()
	write := func(name string, age time.Duration) {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))
		require.NoError(t, os.Chtimes(path, now.Add(-age), now.Add(-age)))
	}
	write("session_expired", 8*24*time.Hour)
	write("session_fresh", time.Hour)
	write("unrelated.txt", 30*24*time.Hour)

	removed, err := store.Sweep(now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.NoFileExists(t, filepath.Join(dir, "session_expired"))
	assert.FileExists(t, filepath.Join(dir, "session_fresh"))
	assert.FileExists(t, filepath.Join(dir, "unrelated.txt"))
}

func TestSweepKeepsSavedSession(t *testing.T) {
	store := newTestStore(t)

	rec := httptest.NewRecorder()
	_, err := store.SaveRun(rec, httptest.NewRequest(http.MethodPost, "/", nil), models.DefaultBrief(), models.NewOutputBundle())
	require.NoError(t, err)

	removed, err := store.Sweep(time.Now())
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.True(t, store.Load(followUp(rec)).HasBundle)
}
