package tags

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bogem/id3v2"

	"github.com/lysyi3m/rss-ripper/internal/logging"
)

func TestWriteTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "episode.mp3")
	if err := os.WriteFile(path, []byte("fake mp3 payload"), 0644); err != nil {
		t.Fatal(err)
	}

	published := time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)
	writer := NewWriter(logging.NewNop())

	err := writer.WriteTags(path, Tags{
		Album:       "Test Podcast",
		Artist:      "Feed Author",
		Title:       "Episode One",
		ReleaseDate: &published,
		Comment:     "First episode summary",
		Genre:       "Technology",
	})
	if err != nil {
		t.Fatalf("WriteTags failed: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	if tag.Album() != "Test Podcast" {
		t.Errorf("expected album 'Test Podcast', got '%s'", tag.Album())
	}
	if tag.Artist() != "Feed Author" {
		t.Errorf("expected artist 'Feed Author', got '%s'", tag.Artist())
	}
	if tag.Title() != "Episode One" {
		t.Errorf("expected title 'Episode One', got '%s'", tag.Title())
	}
	if tag.Genre() != "Technology" {
		t.Errorf("expected genre 'Technology', got '%s'", tag.Genre())
	}
}

func TestWriteTagsSkipsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "episode.mp3")
	if err := os.WriteFile(path, []byte("fake mp3 payload"), 0644); err != nil {
		t.Fatal(err)
	}

	writer := NewWriter(logging.NewNop())
	if err := writer.WriteTags(path, Tags{Title: "Only Title"}); err != nil {
		t.Fatalf("WriteTags failed: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	if tag.Title() != "Only Title" {
		t.Errorf("expected title 'Only Title', got '%s'", tag.Title())
	}
	if tag.Artist() != "" {
		t.Errorf("expected empty artist, got '%s'", tag.Artist())
	}
}

func TestWriteTagsMissingFile(t *testing.T) {
	writer := NewWriter(logging.NewNop())
	err := writer.WriteTags(filepath.Join(t.TempDir(), "missing.mp3"), Tags{Title: "x"})
	if err == nil {
		t.Error("expected error for missing file")
	}
}
