// Package session keeps the last brief and generated concept per browser.
package session

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Conceptual-Machines/game-design-team/internal/config"
	"github.com/Conceptual-Machines/game-design-team/internal/logger"
	"github.com/Conceptual-Machines/game-design-team/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// CookieName is the session cookie set on the browser
const CookieName = "game_design_session"

const (
	keyID     = "id"
	keyBrief  = "brief"
	keyBundle = "bundle"

	sessionMaxAgeSeconds = 7 * 24 * 60 * 60
	// FilesystemStore names its files "session_" + session ID
	sessionFilePrefix = "session_"
)

func init() {
	gob.Register(models.GameBrief{})
	gob.Register(models.OutputBundle{})
}

// State is what the presentation layer reads back for one browser
type State struct {
	ID        string
	Brief     models.GameBrief
	HasBrief  bool
	Bundle    models.OutputBundle
	HasBundle bool
}

// Store persists session values on disk, keyed by an authenticated cookie
type Store struct {
	store  *sessions.FilesystemStore
	dir    string
	maxAge time.Duration
}

// NewStore creates a filesystem-backed session store. An empty SessionDir
// uses the OS temp directory.
func NewStore(cfg *config.Config) *Store {
	dir := cfg.SessionDir
	if dir == "" {
		dir = os.TempDir()
	}
	fsStore := sessions.NewFilesystemStore(dir, []byte(cfg.SessionSecret))
	// Generated concepts easily exceed the securecookie default of 4096 bytes
	fsStore.MaxLength(0)
	fsStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAgeSeconds,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{
		store:  fsStore,
		dir:    dir,
		maxAge: sessionMaxAgeSeconds * time.Second,
	}
}

// Load returns the stored state. A missing, expired or tampered session yields
// an empty state with defaults; it is not an error.
func (s *Store) Load(r *http.Request) *State {
	sess := s.session(r)

	state := &State{
		Brief:  models.DefaultBrief(),
		Bundle: models.NewOutputBundle(),
	}
	if id, ok := sess.Values[keyID].(string); ok {
		state.ID = id
	}
	if brief, ok := sess.Values[keyBrief].(models.GameBrief); ok {
		brief.Normalize()
		state.Brief = brief
		state.HasBrief = true
	}
	if bundle, ok := sess.Values[keyBundle].(models.OutputBundle); ok {
		state.Bundle = bundle
		state.HasBundle = true
	}
	return state
}

// SaveRun stores brief and bundle of a completed run in one write and
// returns the session ID, assigning one on first save
func (s *Store) SaveRun(w http.ResponseWriter, r *http.Request, brief models.GameBrief, bundle models.OutputBundle) (string, error) {
	sess := s.session(r)

	id, ok := sess.Values[keyID].(string)
	if !ok || id == "" {
		id = uuid.New().String()
		sess.Values[keyID] = id
	}
	sess.Values[keyBrief] = brief
	sess.Values[keyBundle] = bundle

	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return id, nil
}

// session returns the request's session, falling back to a fresh one when the
// cookie cannot be decoded or its file is gone
func (s *Store) session(r *http.Request) *sessions.Session {
	sess, err := s.store.Get(r, CookieName)
	if err != nil {
		logger.Warn("Discarding unreadable session", logger.Fields{"error": err.Error()})
		sess, _ = s.store.New(r, CookieName)
		sess.IsNew = true
	}
	return sess
}

// Sweep deletes session files not written to for longer than the session
// lifetime. The browser cookie has expired by then, so the file is unreachable.
func (s *Store) Sweep(now time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read session dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), sessionFilePrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || now.Sub(info.ModTime()) < s.maxAge {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Failed to remove expired session", logger.Fields{"file": entry.Name(), "error": err.Error()})
			continue
		}
		removed++
	}
	return removed, nil
}

// StartSweeper runs Sweep every interval until ctx is canceled
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				removed, err := s.Sweep(now)
				if err != nil {
					logger.Warn("Session sweep failed", logger.Fields{"error": err.Error()})
					continue
				}
				if removed > 0 {
					logger.Info("Expired sessions removed", logger.Fields{"count": removed})
				}
			}
		}
	}()
}
