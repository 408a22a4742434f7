// Package models defines the domain types for skriv.
package models

// Category identifies a content category. Essay, article, and experiment
// are aliases sharing the long-form directory and encoding; notes and tapes
// each have their own.
type Category string

const (
	Essay      Category = "essay"
	Article    Category = "article"
	Experiment Category = "experiment"
	Note       Category = "note"
	Tape       Category = "tape"
)

// Encoding selects the on-disk format for a category.
type Encoding int

const (
	// LongForm files carry a single-line JSON header followed by the body.
	LongForm Encoding = iota
	// NoteJSON files are plain JSON note documents.
	NoteJSON
	// TapeJSON files are JSON metadata next to a binary audio file.
	TapeJSON
)

// Descriptor maps a category onto its directory, file extension, and
// encoding.
type Descriptor struct {
	Dir      string
	Ext      string
	Encoding Encoding
}

var descriptors = map[Category]Descriptor{
	Essay:      {Dir: "essays", Ext: ".md", Encoding: LongForm},
	Article:    {Dir: "essays", Ext: ".md", Encoding: LongForm},
	Experiment: {Dir: "essays", Ext: ".md", Encoding: LongForm},
	Note:       {Dir: "notes", Ext: ".json", Encoding: NoteJSON},
	Tape:       {Dir: "tapes", Ext: ".json", Encoding: TapeJSON},
}

// Describe resolves a category to its descriptor. Unknown categories fall
// back to the long-form descriptor.
func Describe(c Category) Descriptor {
	if d, ok := descriptors[c]; ok {
		return d
	}
	return descriptors[Essay]
}

// DescribeArticle resolves a category for the article create/update/delete
// operations. Tapes are managed exclusively by the dedicated tape
// endpoints, so here "tape" resolves to the long-form descriptor exactly
// like an unrecognised category would.
func DescribeArticle(c Category) Descriptor {
	d := Describe(c)
	if d.Encoding == TapeJSON {
		return descriptors[Essay]
	}
	return d
}

// AudioExtensions lists the recognised tape audio file extensions, probed
// in this order on delete.
var AudioExtensions = []string{"mp3", "wav", "m4a", "ogg", "flac"}

// ContentItem is the logical content unit returned by list operations,
// regardless of the category's concrete on-disk encoding.
type ContentItem struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Date     string   `json:"date"`
	Duration string   `json:"duration,omitempty"`
	HasAudio bool     `json:"hasAudio,omitempty"`
}
