package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lysyi3m/rss-ripper/internal/logging"
)

func TestLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	content := `
feed:
  url: "https://example.com/feed.xml"
  name: "Test Podcast"

settings:
  save_dir: "/archive/test-podcast"
  save_text: true
  num_episodes: 5
`
	if err := os.WriteFile(filepath.Join(tempDir, "test.yml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(tempDir, logging.NewNop())
	configs, err := loader.LoadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(configs) != 1 {
		t.Fatalf("expected 1 config, got %d", len(configs))
	}

	for _, cfg := range configs {
		if cfg.Feed.URL != "https://example.com/feed.xml" {
			t.Errorf("unexpected URL: %s", cfg.Feed.URL)
		}
		if cfg.Feed.Name != "Test Podcast" {
			t.Errorf("unexpected name: %s", cfg.Feed.Name)
		}
		if cfg.Settings.SaveDir != "/archive/test-podcast" {
			t.Errorf("unexpected save dir: %s", cfg.Settings.SaveDir)
		}
		if !cfg.Settings.SaveText {
			t.Error("expected save_text to be true")
		}
		if cfg.Settings.NumEpisodes != 5 {
			t.Errorf("expected num_episodes 5, got %d", cfg.Settings.NumEpisodes)
		}
	}
}

func TestLoadRejectsMissingURL(t *testing.T) {
	tempDir := t.TempDir()

	content := `
feed:
  name: "No URL"
settings:
  save_dir: "/archive"
`
	if err := os.WriteFile(filepath.Join(tempDir, "bad.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(tempDir, logging.NewNop())
	if _, err := loader.LoadAll(); err == nil {
		t.Error("expected error for config without URL")
	}
}

func TestLoadRejectsMissingSaveDir(t *testing.T) {
	tempDir := t.TempDir()

	content := `
feed:
  url: "https://example.com/feed.xml"
`
	if err := os.WriteFile(filepath.Join(tempDir, "bad.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(tempDir, logging.NewNop())
	if _, err := loader.LoadAll(); err == nil {
		t.Error("expected error for config without save_dir")
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent"), logging.NewNop())
	if _, err := loader.LoadAll(); err == nil {
		t.Error("expected error for missing feeds directory")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "bad.yaml"), []byte("feed: ["), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(tempDir, logging.NewNop())
	if _, err := loader.LoadAll(); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
