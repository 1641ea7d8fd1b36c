package games

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/db"
	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	"github.com/hyun090116/vortex-game-explorer/pkg/logger"
)

const (
	maxSlugLen         = 255
	slugCollisionTries = 5
)

// Descriptor carries the catalog fields known at purchase time.
type Descriptor struct {
	Title       string
	Developer   *string
	Description *string
	Price       int64
	CoverImage  *string
	Genre       []string
	Rating      float64
	ReleaseDate *time.Time
}

// Materializer resolves purchased titles to catalog rows, creating them when
// the catalog has never seen the title.
type Materializer struct {
	log *logger.Logger
}

// NewMaterializer builds a materializer with the provided logger.
func NewMaterializer(log *logger.Logger) *Materializer {
	return &Materializer{log: log}
}

// EnsureGame returns the catalog id for the descriptor, creating the row
// inside tx on first sight. A blocked creation degrades to a placeholder id
// rather than failing the caller; the purchase row then references an id with
// no games row behind it.
func (m *Materializer) EnsureGame(ctx context.Context, tx *gorm.DB, d Descriptor) uuid.UUID {
	repo := NewRepository(tx)

	title := strings.TrimSpace(d.Title)
	if title == "" {
		return m.placeholder(ctx, d, fmt.Errorf("empty title"))
	}

	existing, err := repo.FindByTitle(ctx, title)
	if err == nil {
		return existing.ID
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return m.placeholder(ctx, d, err)
	}

	base := Slugify(title)
	slug := base
	for attempt := 0; attempt <= slugCollisionTries; attempt++ {
		if attempt > 0 {
			slug = fmt.Sprintf("%s-%d", base, attempt)
		}
		game := &models.Game{
			Title:       title,
			Slug:        slug,
			Developer:   d.Developer,
			Description: d.Description,
			Price:       d.Price,
			CoverImage:  d.CoverImage,
			Genre:       pq.StringArray(d.Genre),
			Rating:      d.Rating,
			ReleaseDate: d.ReleaseDate,
		}
		created, err := repo.Create(ctx, game)
		if err == nil {
			return created.ID
		}
		if db.IsUniqueViolation(err, "uq_games_slug") {
			continue
		}
		return m.placeholder(ctx, d, err)
	}
	return m.placeholder(ctx, d, fmt.Errorf("slug %q exhausted %d collision retries", base, slugCollisionTries))
}

func (m *Materializer) placeholder(ctx context.Context, d Descriptor, cause error) uuid.UUID {
	id := uuid.New()
	if m.log != nil {
		ctx = m.log.WithFields(ctx, map[string]any{
			"game_title":     d.Title,
			"placeholder_id": id.String(),
		})
		m.log.Warn(ctx, "catalog materialization degraded to placeholder: "+cause.Error())
	}
	return id
}

// Slugify lowercases the title and collapses every run outside [a-z0-9가-힣]
// into a single hyphen.
func Slugify(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	lastHyphen := false
	for _, r := range lowered {
		if b.Len()+len(string(r)) > maxSlugLen {
			break
		}
		keep := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || (r >= '가' && r <= '힣')
		if keep {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen && b.Len() > 0 {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "game"
	}
	return slug
}
