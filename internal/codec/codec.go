// Package codec encodes and decodes the on-disk content formats: the
// header+body text format for long-form pieces, and the JSON documents for
// notes and tape metadata.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Header holds the structured metadata written on the first line of a
// long-form file. Field values are single-line; embedded newlines are not
// supported.
type Header struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Date    string `json:"date"`
	Type    string `json:"type"`
}

// Decoded is the result of decoding a long-form file. Header is nil when
// the file had no parseable leading header, in which case Body carries the
// entire original content and the caller is expected to fill defaults.
type Decoded struct {
	Header *Header
	Body   string
}

// EncodeLongForm writes the header as a single-line JSON object literal
// followed by a newline and the body. Double quotes inside header values
// are escaped so the line re-decodes losslessly; other control characters
// are not escaped.
func EncodeLongForm(h Header, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `{"title": "%s", "excerpt": "%s", "date": "%s", "type": "%s"}`,
		escapeQuotes(h.Title), escapeQuotes(h.Excerpt), escapeQuotes(h.Date), escapeQuotes(h.Type))
	b.WriteByte('\n')
	b.WriteString(body)
	return []byte(b.String())
}

// DecodeLongForm splits a long-form file into header and body. The header
// is a leading {...} block terminated by a newline; if it is absent or does
// not parse as JSON the entire content becomes the body.
func DecodeLongForm(data []byte) Decoded {
	s := string(data)
	if strings.HasPrefix(s, "{") {
		if i := strings.Index(s, "}\n"); i >= 0 {
			var h Header
			if err := json.Unmarshal([]byte(s[:i+1]), &h); err == nil {
				return Decoded{Header: &h, Body: strings.TrimSpace(s[i+2:])}
			}
		}
	}
	return Decoded{Body: s}
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// NoteFile is the JSON document stored for a note. The x/y/r/z layout
// hints belong to the presentation layer; the store persists them without
// interpreting them.
type NoteFile struct {
	Title string  `json:"title"`
	Text  string  `json:"text"`
	Date  string  `json:"date"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Z     float64 `json:"z"`
}

// noteUpdate is the reduced document written on note updates. Updates
// intentionally drop the layout hints; only create writes them.
type noteUpdate struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Date  string `json:"date"`
}

// EncodeNote serialises a freshly created note with zeroed layout hints
// (z starts at 100, the presentation layer's base stacking order).
func EncodeNote(title, text, date string) ([]byte, error) {
	return json.MarshalIndent(NoteFile{Title: title, Text: text, Date: date, Z: 100}, "", "  ")
}

// EncodeNoteUpdate serialises an updated note. Layout hints are dropped.
func EncodeNoteUpdate(title, text, date string) ([]byte, error) {
	return json.MarshalIndent(noteUpdate{Title: title, Text: text, Date: date}, "", "  ")
}

// DecodeNote parses a note document.
func DecodeNote(data []byte) (NoteFile, error) {
	var n NoteFile
	if err := json.Unmarshal(data, &n); err != nil {
		return NoteFile{}, fmt.Errorf("codec: decode note: %w", err)
	}
	return n, nil
}

// TapeFile is the JSON sidecar document stored next to a tape's audio file.
type TapeFile struct {
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	Duration    string  `json:"duration"`
	Description string  `json:"description"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	R           float64 `json:"r"`
	Z           float64 `json:"z"`
}

// EncodeTape serialises tape metadata with zeroed layout hints.
func EncodeTape(title, date, duration, description string) ([]byte, error) {
	return json.MarshalIndent(TapeFile{
		Title:       title,
		Date:        date,
		Duration:    duration,
		Description: description,
		Z:           100,
	}, "", "  ")
}

// DecodeTape parses a tape metadata document.
func DecodeTape(data []byte) (TapeFile, error) {
	var t TapeFile
	if err := json.Unmarshal(data, &t); err != nil {
		return TapeFile{}, fmt.Errorf("codec: decode tape: %w", err)
	}
	return t, nil
}
