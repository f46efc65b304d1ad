// Package tags writes ID3 metadata into downloaded audio files. A tagging
// failure is always per-file: it never rolls back the ledger write or
// deletes the downloaded file.
package tags

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bogem/id3v2"
)

// Tags holds the metadata values written into a file's tag block. Empty
// fields are left untouched.
type Tags struct {
	Album       string     // container/feed title
	Artist      string     // entry author, falling back to feed author
	Title       string     // entry title
	ReleaseDate *time.Time // entry's parsed publication timestamp
	Comment     string     // entry summary
	Genre       string     // first feed-level category term
}

// Writer mutates a file's embedded ID3 tag block in place.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a new tag writer
func NewWriter(logger *slog.Logger) *Writer {
	return &Writer{logger: logger}
}

// WriteTags opens the file at path and applies the provided metadata.
func (w *Writer) WriteTags(path string, meta Tags) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("could not open file for tagging: %w", err)
	}
	defer tag.Close()

	if meta.Album != "" {
		tag.SetAlbum(meta.Album)
	}

	if meta.Artist != "" {
		tag.SetArtist(meta.Artist)
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, meta.Artist)
	}

	if meta.Title != "" {
		tag.SetTitle(meta.Title)
	}

	if meta.ReleaseDate != nil {
		tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, meta.ReleaseDate.Format("2006-01-02T15:04:05"))
	}

	if meta.Comment != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "",
			Text:        meta.Comment,
		})
	}

	if meta.Genre != "" {
		tag.SetGenre(meta.Genre)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("could not save tags: %w", err)
	}

	w.logger.Info("Successfully set tags", "path", path)
	return nil
}
