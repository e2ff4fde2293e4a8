// Package musiclink persists the gallery's single background-music URL.
package musiclink

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/vbonduro/photowall/internal/domain"
)

// Key is the config document that holds the link.
const Key = "youtube"

// Store saves and loads the single music link. Load reports ok=false when no
// link has been saved.
type Store interface {
	Save(ctx context.Context, link string) error
	Load(ctx context.Context) (link domain.MusicLink, ok bool, err error)
}

// configRepository is the subset of store.ConfigStore that SQLStore requires.
type configRepository interface {
	Set(ctx context.Context, key, value string) (time.Time, error)
	Get(ctx context.Context, key string) (string, time.Time, bool, error)
}

// SQLStore keeps the link in the config table. Every failure is reported as
// domain.ErrConfigUnavailable so a Fallback can recover from it.
type SQLStore struct {
	repo configRepository
}

func NewSQLStore(repo configRepository) *SQLStore {
	return &SQLStore{repo: repo}
}

func (s *SQLStore) Save(ctx context.Context, link string) error {
	if _, err := s.repo.Set(ctx, Key, link); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfigUnavailable, err)
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context) (domain.MusicLink, bool, error) {
	value, updatedAt, ok, err := s.repo.Get(ctx, Key)
	if err != nil {
		return domain.MusicLink{}, false, fmt.Errorf("%w: %w", domain.ErrConfigUnavailable, err)
	}
	if !ok {
		return domain.MusicLink{}, false, nil
	}
	return domain.MusicLink{Link: value, UpdatedAt: updatedAt}, true, nil
}

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// VideoID extracts the YouTube video id from link. It accepts watch, short
// youtu.be, embed and shorts URLs as well as a bare 11-character id.
func VideoID(link string) (string, bool) {
	link = strings.TrimSpace(link)
	if videoIDPattern.MatchString(link) {
		return link, true
	}

	if !strings.Contains(link, "://") {
		link = "https://" + link
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	var candidate string
	switch host {
	case "youtu.be":
		candidate = strings.Trim(u.Path, "/")
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		switch {
		case segments[0] == "watch":
			candidate = u.Query().Get("v")
		case len(segments) == 2 && (segments[0] == "embed" || segments[0] == "shorts" || segments[0] == "v" || segments[0] == "live"):
			candidate = segments[1]
		}
	}

	if !videoIDPattern.MatchString(candidate) {
		return "", false
	}
	return candidate, true
}
