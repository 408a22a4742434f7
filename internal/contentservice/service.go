// Package contentservice implements the content data layer: listing,
// creating, updating, and deleting content items across the three category
// directories.
package contentservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/arvid/skriv/internal/apperr"
	"github.com/arvid/skriv/internal/codec"
	"github.com/arvid/skriv/internal/models"
	"github.com/arvid/skriv/internal/slug"
	"github.com/arvid/skriv/internal/storage"
)

const (
	longFormExcerptLen = 150
	listExcerptLen     = 100

	defaultDuration = "0:00"
)

// Service coordinates storage, codec, and slug operations for content.
type Service struct {
	store storage.Provider
	now   func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithClock injects a clock (primarily for tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a content service on top of the given storage provider.
func New(store storage.Provider, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput is the input for creating or updating a text content item.
type CreateInput struct {
	Title    string
	Excerpt  string
	Content  string
	Category models.Category
	Date     string
}

// List enumerates all three category directories and returns the merged
// item list sorted by date descending. A missing category directory is
// treated as empty. Items whose date does not parse sort as oldest.
func (s *Service) List(_ context.Context) ([]models.ContentItem, error) {
	var items []models.ContentItem
	items = append(items, s.listLongForm()...)
	items = append(items, s.listNotes()...)
	items = append(items, s.listTapes()...)

	sort.SliceStable(items, func(i, j int) bool {
		return parseDate(items[i].Date).After(parseDate(items[j].Date))
	})
	return items, nil
}

// Create writes a new text item. Title and content are required; the id is
// the slug of the title and silently overwrites any colliding file.
func (s *Service) Create(_ context.Context, in CreateInput) (models.ContentItem, error) {
	if in.Title == "" || in.Content == "" {
		return models.ContentItem{}, fmt.Errorf("%w: title and content required", apperr.ErrValidation)
	}

	id := slug.Slugify(in.Title)
	d := models.DescribeArticle(in.Category)

	data, err := s.encodeArticle(d, in, false)
	if err != nil {
		return models.ContentItem{}, err
	}
	if err := s.store.Write(itemPath(d, id), data); err != nil {
		return models.ContentItem{}, err
	}

	return models.ContentItem{
		ID:       id,
		Category: in.Category,
		Title:    in.Title,
		Excerpt:  in.Excerpt,
		Content:  in.Content,
		Date:     in.Date,
	}, nil
}

// Update rewrites an item in place. The destination is derived from the
// new title when present, else from the existing id; a title or category
// change therefore relocates the item without removing the old file. Only
// an explicit delete cleans that up.
func (s *Service) Update(_ context.Context, id string, in CreateInput) error {
	name := slug.Slugify(in.Title)
	if in.Title == "" {
		name = slug.Slugify(id)
	}
	d := models.DescribeArticle(in.Category)

	data, err := s.encodeArticle(d, in, true)
	if err != nil {
		return err
	}
	return s.store.Write(itemPath(d, name), data)
}

// Delete removes the single file for the given category and id. A missing
// file is reported as apperr.ErrNotFound.
func (s *Service) Delete(_ context.Context, id string, category models.Category) error {
	d := models.DescribeArticle(category)
	err := s.store.Delete(itemPath(d, slug.SanitizeID(id)))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", apperr.ErrNotFound, id)
	}
	return err
}

// TapeInput is the metadata accompanying an uploaded audio file.
type TapeInput struct {
	Title       string
	Description string
	Duration    string
	Date        string
}

// CreateTape stores the audio payload and its metadata sidecar, both named
// by the slug of the title. The audio extension is taken from the original
// filename, lowercased.
func (s *Service) CreateTape(_ context.Context, in TapeInput, audio []byte, originalName string) (models.ContentItem, error) {
	if in.Title == "" || len(audio) == 0 {
		return models.ContentItem{}, fmt.Errorf("%w: title and audio file required", apperr.ErrValidation)
	}

	id := slug.Slugify(in.Title)
	ext := audioExt(originalName)
	duration := in.Duration
	if duration == "" {
		duration = defaultDuration
	}

	if err := s.store.Write(tapePath(id, ext), audio); err != nil {
		return models.ContentItem{}, err
	}
	meta, err := codec.EncodeTape(in.Title, in.Date, duration, in.Description)
	if err != nil {
		return models.ContentItem{}, err
	}
	if err := s.store.Write(tapePath(id, "json"), meta); err != nil {
		return models.ContentItem{}, err
	}

	return models.ContentItem{
		ID:       id,
		Category: models.Tape,
		Title:    in.Title,
		Content:  in.Description,
		Date:     in.Date,
		Duration: duration,
		HasAudio: true,
	}, nil
}

// DeleteTape removes the metadata file and every recognised audio variant
// for the given id. It succeeds when at least one removal succeeded and
// reports apperr.ErrNotFound when nothing was there to delete.
func (s *Service) DeleteTape(_ context.Context, id string) error {
	deleted := false
	if err := s.store.Delete(tapePath(id, "json")); err == nil {
		deleted = true
	}
	for _, ext := range models.AudioExtensions {
		if err := s.store.Delete(tapePath(id, ext)); err == nil {
			deleted = true
		}
	}
	if !deleted {
		return fmt.Errorf("%w: tape %s", apperr.ErrNotFound, id)
	}
	return nil
}

// encodeArticle serialises a text item per its category descriptor. Note
// updates write the reduced document without layout hints.
func (s *Service) encodeArticle(d models.Descriptor, in CreateInput, update bool) ([]byte, error) {
	date := in.Date
	if date == "" {
		date = s.today()
	}
	switch d.Encoding {
	case models.NoteJSON:
		if update {
			return codec.EncodeNoteUpdate(in.Title, in.Content, date)
		}
		return codec.EncodeNote(in.Title, in.Content, date)
	default:
		excerpt := in.Excerpt
		if excerpt == "" {
			excerpt = firstRunes(in.Content, longFormExcerptLen)
		}
		return codec.EncodeLongForm(codec.Header{
			Title:   in.Title,
			Excerpt: excerpt,
			Date:    date,
			Type:    strings.ToUpper(string(in.Category)),
		}, in.Content), nil
	}
}

func (s *Service) listLongForm() []models.ContentItem {
	d := models.Describe(models.Essay)
	var items []models.ContentItem
	for _, name := range s.listDir(d.Dir) {
		if !strings.HasSuffix(name, d.Ext) {
			continue
		}
		data, err := s.store.Read(d.Dir + "/" + name)
		if err != nil {
			slog.Warn("list: read failed", slog.String("file", name), slog.String("error", err.Error()))
			continue
		}
		id := strings.TrimSuffix(name, d.Ext)
		dec := codec.DecodeLongForm(data)

		item := models.ContentItem{
			ID:       id,
			Category: models.Essay,
			Type:     "ESSAY",
			Content:  dec.Body,
		}
		if dec.Header != nil {
			item.Title = fallback(dec.Header.Title, id)
			item.Excerpt = fallback(dec.Header.Excerpt, firstRunes(dec.Body, longFormExcerptLen))
			item.Date = fallback(dec.Header.Date, s.today())
		} else {
			item.Title = id
			item.Excerpt = firstRunes(dec.Body, longFormExcerptLen)
			item.Date = s.today()
		}
		items = append(items, item)
	}
	return items
}

func (s *Service) listNotes() []models.ContentItem {
	d := models.Describe(models.Note)
	var items []models.ContentItem
	for _, name := range s.listDir(d.Dir) {
		if !strings.HasSuffix(name, d.Ext) {
			continue
		}
		data, err := s.store.Read(d.Dir + "/" + name)
		if err != nil {
			slog.Warn("list: read failed", slog.String("file", name), slog.String("error", err.Error()))
			continue
		}
		n, err := codec.DecodeNote(data)
		if err != nil {
			slog.Warn("list: skipping malformed note", slog.String("file", name), slog.String("error", err.Error()))
			continue
		}
		items = append(items, models.ContentItem{
			ID:       strings.TrimSuffix(name, d.Ext),
			Category: models.Note,
			Type:     "NOTE",
			Title:    fallback(n.Title, "Untitled Note"),
			Content:  n.Text,
			Excerpt:  firstRunes(n.Text, listExcerptLen),
			Date:     fallback(n.Date, s.today()),
		})
	}
	return items
}

func (s *Service) listTapes() []models.ContentItem {
	d := models.Describe(models.Tape)
	var items []models.ContentItem
	for _, name := range s.listDir(d.Dir) {
		if !strings.HasSuffix(name, d.Ext) {
			continue
		}
		data, err := s.store.Read(d.Dir + "/" + name)
		if err != nil {
			slog.Warn("list: read failed", slog.String("file", name), slog.String("error", err.Error()))
			continue
		}
		t, err := codec.DecodeTape(data)
		if err != nil {
			slog.Warn("list: skipping malformed tape", slog.String("file", name), slog.String("error", err.Error()))
			continue
		}
		items = append(items, models.ContentItem{
			ID:       strings.TrimSuffix(name, d.Ext),
			Category: models.Tape,
			Type:     "TAPE",
			Title:    fallback(t.Title, "Untitled Recording"),
			Content:  t.Description,
			Excerpt:  firstRunes(t.Description, listExcerptLen),
			Date:     fallback(t.Date, s.today()),
			Duration: fallback(t.Duration, defaultDuration),
			HasAudio: true,
		})
	}
	return items
}

// listDir returns the directory's file names, treating a missing directory
// as empty.
func (s *Service) listDir(dir string) []string {
	names, err := s.store.List(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("list: read dir failed", slog.String("dir", dir), slog.String("error", err.Error()))
		}
		return nil
	}
	return names
}

func (s *Service) today() string {
	return s.now().Format("2006-01-02")
}

func itemPath(d models.Descriptor, id string) string {
	return d.Dir + "/" + id + d.Ext
}

func tapePath(id, ext string) string {
	return models.Describe(models.Tape).Dir + "/" + id + "." + ext
}

// audioExt extracts the extension after the last dot of the original
// filename, lowercased. A name without a dot is used wholesale.
func audioExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return strings.ToLower(name[i+1:])
	}
	return strings.ToLower(name)
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// parseDate accepts plain dates or RFC 3339 timestamps; anything else
// sorts as the zero time (oldest).
func parseDate(s string) time.Time {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
