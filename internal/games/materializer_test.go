package games

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hollow Depths", "hollow-depths"},
		{"  Dark Souls: Remastered!! ", "dark-souls-remastered"},
		{"검은사막 리마스터", "검은사막-리마스터"},
		{"100% Orange Juice", "100-orange-juice"},
		{"!!!", "game"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEnsureGameReusesExistingTitle(t *testing.T) {
	repo := newTestRepo(t)
	m := NewMaterializer(nil)

	existing := seedGame(t, repo, models.Game{Title: "Hollow Depths", Price: 32000})

	id := m.EnsureGame(context.Background(), repo.db, Descriptor{Title: "Hollow Depths", Price: 32000})
	if id != existing.ID {
		t.Fatalf("expected existing id %s, got %s", existing.ID, id)
	}
}

func TestEnsureGameCreatesWithCollisionSuffix(t *testing.T) {
	repo := newTestRepo(t)
	m := NewMaterializer(nil)

	// Occupies the base slug under a different title.
	seedGame(t, repo, models.Game{Title: "Dark Souls (legacy listing)", Slug: "dark-souls"})

	id := m.EnsureGame(context.Background(), repo.db, Descriptor{Title: "Dark Souls!", Price: 42000})
	if id == uuid.Nil {
		t.Fatal("expected a real id")
	}

	created, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("created row missing: %v", err)
	}
	if created.Slug != "dark-souls-1" {
		t.Fatalf("expected collision suffix slug, got %q", created.Slug)
	}
	if created.Title != "Dark Souls!" {
		t.Fatalf("unexpected title %q", created.Title)
	}
}

func TestEnsureGameCarriesFullMetadata(t *testing.T) {
	repo := newTestRepo(t)
	m := NewMaterializer(nil)

	developer := "Team Cherry"
	description := "A sprawling underground metroidvania."
	release := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	id := m.EnsureGame(context.Background(), repo.db, Descriptor{
		Title:       "Hollow Depths",
		Developer:   &developer,
		Description: &description,
		Price:       32000,
		Genre:       []string{"metroidvania", "indie"},
		Rating:      4.9,
		ReleaseDate: &release,
	})

	created, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("created row missing: %v", err)
	}
	if created.Developer == nil || *created.Developer != developer {
		t.Fatalf("developer missing on created row: %+v", created)
	}
	if created.Description == nil || *created.Description != description {
		t.Fatalf("description missing on created row: %+v", created)
	}
	if len(created.Genre) != 2 || created.Genre[0] != "metroidvania" {
		t.Fatalf("genre missing on created row: %v", created.Genre)
	}
	if created.Rating != 4.9 {
		t.Fatalf("rating missing on created row: %v", created.Rating)
	}
	if created.ReleaseDate == nil || !created.ReleaseDate.Equal(release) {
		t.Fatalf("release date missing on created row: %v", created.ReleaseDate)
	}
}

func TestEnsureGameDegradesToPlaceholder(t *testing.T) {
	repo := newTestRepo(t)
	m := NewMaterializer(nil)

	// Drop the table so creation cannot succeed.
	if err := repo.db.Migrator().DropTable(&models.Game{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	id := m.EnsureGame(context.Background(), repo.db, Descriptor{Title: "Ghost Entry", Price: 1000})
	if id == uuid.Nil {
		t.Fatal("expected placeholder id, got nil uuid")
	}
}
