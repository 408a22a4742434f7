package contentservice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/arvid/skriv/internal/apperr"
	"github.com/arvid/skriv/internal/codec"
	"github.com/arvid/skriv/internal/models"
	"github.com/arvid/skriv/internal/storage"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	}
}

func testService(t *testing.T) (*Service, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	return New(mem, WithClock(fixedClock())), mem
}

func TestCreateLongForm(t *testing.T) {
	svc, mem := testService(t)

	item, err := svc.Create(context.Background(), CreateInput{
		Title:    "Hello, World!",
		Excerpt:  "Hi",
		Content:  "Body text.",
		Category: models.Essay,
		Date:     "2024-01-01",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID != "hello-world" {
		t.Errorf("id = %q, want hello-world", item.ID)
	}

	data, err := mem.Read("essays/hello-world.md")
	if err != nil {
		t.Fatalf("file not written: %v", err)
	}
	d := codec.DecodeLongForm(data)
	if d.Header == nil {
		t.Fatal("expected header on disk")
	}
	if d.Header.Title != "Hello, World!" || d.Header.Excerpt != "Hi" || d.Header.Date != "2024-01-01" || d.Header.Type != "ESSAY" {
		t.Errorf("header = %+v", d.Header)
	}
	if d.Body != "Body text." {
		t.Errorf("body = %q", d.Body)
	}
}

func TestCreate_ExcerptDefaultsToBodyPrefix(t *testing.T) {
	svc, mem := testService(t)

	long := strings.Repeat("x", 200)
	if _, err := svc.Create(context.Background(), CreateInput{
		Title:    "Long One",
		Content:  long,
		Category: models.Article,
		Date:     "2024-01-01",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	data, _ := mem.Read("essays/long-one.md")
	d := codec.DecodeLongForm(data)
	if d.Header == nil {
		t.Fatal("expected header")
	}
	if len(d.Header.Excerpt) != 150 {
		t.Errorf("excerpt len = %d, want 150", len(d.Header.Excerpt))
	}
	if d.Header.Type != "ARTICLE" {
		t.Errorf("type = %q", d.Header.Type)
	}
}

func TestCreate_MissingFields(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Create(context.Background(), CreateInput{Title: "x", Category: models.Essay})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("missing content: err = %v, want ErrValidation", err)
	}
	_, err = svc.Create(context.Background(), CreateInput{Content: "x", Category: models.Essay})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("missing title: err = %v, want ErrValidation", err)
	}
}

func TestCreateNote_WritesJSONWithHints(t *testing.T) {
	svc, mem := testService(t)

	if _, err := svc.Create(context.Background(), CreateInput{
		Title:    "Sticky",
		Content:  "remember this",
		Category: models.Note,
		Date:     "2024-02-02",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	data, err := mem.Read("notes/sticky.json")
	if err != nil {
		t.Fatalf("note not written: %v", err)
	}
	n, err := codec.DecodeNote(data)
	if err != nil {
		t.Fatalf("DecodeNote: %v", err)
	}
	if n.Text != "remember this" || n.Z != 100 {
		t.Errorf("note = %+v", n)
	}
}

func TestCreate_CollisionSilentlyOverwrites(t *testing.T) {
	svc, mem := testService(t)
	ctx := context.Background()

	_, _ = svc.Create(ctx, CreateInput{Title: "Same Title", Content: "first", Category: models.Essay, Date: "2024-01-01"})
	_, err := svc.Create(ctx, CreateInput{Title: "Same   Title", Content: "second", Category: models.Essay, Date: "2024-01-02"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	data, _ := mem.Read("essays/same-title.md")
	if !strings.Contains(string(data), "second") {
		t.Errorf("expected overwrite, got %q", data)
	}
}

func TestUpdate_NewTitleLeavesOldFile(t *testing.T) {
	svc, mem := testService(t)
	ctx := context.Background()

	_, _ = svc.Create(ctx, CreateInput{Title: "Old Title", Content: "v1", Category: models.Essay, Date: "2024-01-01"})
	err := svc.Update(ctx, "old-title", CreateInput{Title: "New Title", Content: "v2", Category: models.Essay, Date: "2024-01-02"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	// The old file is not cleaned up; only explicit delete does that.
	if _, err := mem.Read("essays/old-title.md"); err != nil {
		t.Errorf("old file should remain: %v", err)
	}
	if _, err := mem.Read("essays/new-title.md"); err != nil {
		t.Errorf("new file missing: %v", err)
	}
}

func TestUpdate_FallsBackToID(t *testing.T) {
	svc, mem := testService(t)
	ctx := context.Background()

	_, _ = svc.Create(ctx, CreateInput{Title: "Keep Me", Content: "v1", Category: models.Essay, Date: "2024-01-01"})
	if err := svc.Update(ctx, "keep-me", CreateInput{Content: "v2", Category: models.Essay, Date: "2024-01-02"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	data, err := mem.Read("essays/keep-me.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.Contains(string(data), "v2") {
		t.Errorf("content = %q", data)
	}
}

func TestUpdateNote_DropsLayoutHints(t *testing.T) {
	svc, mem := testService(t)
	ctx := context.Background()

	_, _ = svc.Create(ctx, CreateInput{Title: "Pinned", Content: "v1", Category: models.Note, Date: "2024-01-01"})
	if err := svc.Update(ctx, "pinned", CreateInput{Title: "Pinned", Content: "v2", Category: models.Note, Date: "2024-01-02"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	data, _ := mem.Read("notes/pinned.json")
	if strings.Contains(string(data), `"x"`) {
		t.Errorf("update should drop layout hints: %s", data)
	}
}

func TestDelete(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, _ = svc.Create(ctx, CreateInput{Title: "Doomed", Content: "x", Category: models.Essay, Date: "2024-01-01"})
	if err := svc.Delete(ctx, "doomed", models.Essay); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, "doomed", models.Essay); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestList_MergedAndSorted(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, _ = svc.Create(ctx, CreateInput{Title: "Oldest", Content: "a", Category: models.Essay, Date: "2023-01-01"})
	_, _ = svc.Create(ctx, CreateInput{Title: "Newest", Content: "b", Category: models.Note, Date: "2025-01-01"})
	_, _ = svc.CreateTape(ctx, TapeInput{Title: "Middle", Date: "2024-01-01"}, []byte("audio"), "m.mp3")

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].Title != "Newest" || items[1].Title != "Middle" || items[2].Title != "Oldest" {
		t.Errorf("order = %q %q %q", items[0].Title, items[1].Title, items[2].Title)
	}
	if items[1].Category != models.Tape || !items[1].HasAudio || items[1].Duration != "0:00" {
		t.Errorf("tape item = %+v", items[1])
	}
}

func TestList_MissingDirsAreEmpty(t *testing.T) {
	svc, _ := testService(t)
	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len = %d, want 0", len(items))
	}
}

func TestList_HeaderlessFileFallsBackToDefaults(t *testing.T) {
	svc, mem := testService(t)

	raw := "No header here, just prose that goes on for a while."
	_ = mem.Write("essays/legacy-piece.md", []byte(raw))

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	it := items[0]
	if it.Title != "legacy-piece" {
		t.Errorf("title = %q, want filename stem", it.Title)
	}
	if it.Content != raw {
		t.Errorf("content = %q, want raw text", it.Content)
	}
	if it.Excerpt != raw {
		t.Errorf("excerpt = %q, want first 150 chars (whole text)", it.Excerpt)
	}
	if it.Date != "2024-07-15" {
		t.Errorf("date = %q, want clock date", it.Date)
	}
}

func TestList_UnparseableDateSortsOldest(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, _ = svc.Create(ctx, CreateInput{Title: "Dated", Content: "a", Category: models.Essay, Date: "2001-01-01"})
	_, _ = svc.Create(ctx, CreateInput{Title: "Undatable", Content: "b", Category: models.Essay, Date: "someday"})

	items, _ := svc.List(ctx)
	if items[len(items)-1].Title != "Undatable" {
		t.Errorf("unparseable date should sort last, got %q", items[len(items)-1].Title)
	}
}

func TestCreateTape_FileNaming(t *testing.T) {
	svc, mem := testService(t)

	item, err := svc.CreateTape(context.Background(), TapeInput{Title: "Field Recording"}, []byte("RIFFdata"), "take1.WAV")
	if err != nil {
		t.Fatalf("CreateTape: %v", err)
	}
	if item.ID != "field-recording" {
		t.Errorf("id = %q", item.ID)
	}
	audio, err := mem.Read("tapes/field-recording.wav")
	if err != nil {
		t.Fatalf("audio not written: %v", err)
	}
	if string(audio) != "RIFFdata" {
		t.Errorf("audio bytes altered: %q", audio)
	}
	meta, err := mem.Read("tapes/field-recording.json")
	if err != nil {
		t.Fatalf("metadata not written: %v", err)
	}
	tp, err := codec.DecodeTape(meta)
	if err != nil {
		t.Fatalf("DecodeTape: %v", err)
	}
	if tp.Duration != "0:00" {
		t.Errorf("duration = %q, want default 0:00", tp.Duration)
	}
	if tp.Description != "" {
		t.Errorf("description = %q, want empty default", tp.Description)
	}
}

func TestCreateTape_Validation(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateTape(ctx, TapeInput{}, []byte("x"), "a.mp3"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("missing title: err = %v", err)
	}
	if _, err := svc.CreateTape(ctx, TapeInput{Title: "t"}, nil, "a.mp3"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty audio: err = %v", err)
	}
}

func TestDeleteTape_MetadataOnlySucceeds(t *testing.T) {
	svc, mem := testService(t)

	_ = mem.Write("tapes/orphan.json", []byte("{}"))
	if err := svc.DeleteTape(context.Background(), "orphan"); err != nil {
		t.Errorf("DeleteTape: %v, want success when metadata alone exists", err)
	}
}

func TestDeleteTape_RemovesAllVariants(t *testing.T) {
	svc, mem := testService(t)

	_, _ = svc.CreateTape(context.Background(), TapeInput{Title: "Both Files"}, []byte("x"), "x.mp3")
	if err := svc.DeleteTape(context.Background(), "both-files"); err != nil {
		t.Fatalf("DeleteTape: %v", err)
	}
	if _, err := mem.Read("tapes/both-files.json"); err == nil {
		t.Error("metadata should be gone")
	}
	if _, err := mem.Read("tapes/both-files.mp3"); err == nil {
		t.Error("audio should be gone")
	}
}

func TestDeleteTape_NothingToDelete(t *testing.T) {
	svc, _ := testService(t)
	if err := svc.DeleteTape(context.Background(), "ghost"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreate_EmptySlugStillWrites(t *testing.T) {
	// A title that slugs to empty is degenerate but accepted: the file is
	// written under the bare extension.
	svc, mem := testService(t)

	item, err := svc.Create(context.Background(), CreateInput{Title: "!!!", Content: "x", Category: models.Essay, Date: "2024-01-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID != "" {
		t.Errorf("id = %q, want empty", item.ID)
	}
	if _, err := mem.Read("essays/.md"); err != nil {
		t.Errorf("degenerate file not written: %v", err)
	}
}
