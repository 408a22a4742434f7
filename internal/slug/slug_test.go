package slug

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   spaces\tand\ttabs", "multiple-spaces-and-tabs"},
		{"UPPER lower 123", "upper-lower-123"},
		{"already-a-slug", "already-a-slug"},
		{"Punctuation: (lots) of; it?", "punctuation-lots-of-it"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugify_CharacterSet(t *testing.T) {
	// Only lowercase letters, digits, and hyphens may survive.
	out := Slugify("A b!C@d#1 2$3")
	for _, r := range out {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			t.Fatalf("Slugify produced %q, char %q outside [a-z0-9-]", out, r)
		}
	}
}

func TestSlugify_NoEdgeHyphensFromWhitespace(t *testing.T) {
	if got := Slugify("  spaced title  "); got != "spaced-title" {
		t.Errorf("got %q, want no leading/trailing hyphens", got)
	}
	if got := Slugify("a  b"); got != "a-b" {
		t.Errorf("got %q, want single hyphen between words", got)
	}
}

func TestSlugify_UnicodeDegrades(t *testing.T) {
	// Only ASCII alphanumerics survive; non-ASCII titles degrade to an
	// empty or near-empty slug. Accepted limitation.
	if got := Slugify("日本語のタイトル"); got != "" {
		t.Errorf("Slugify(unicode) = %q, want empty", got)
	}
	if got := Slugify("café au lait"); got != "caf-au-lait" {
		t.Errorf("Slugify = %q, want %q", got, "caf-au-lait")
	}
}

func TestSanitizeID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"my-essay", "my-essay"},
		{"My Essay", "my-essay"},
		{"weird/../path", "weird----path"},
		{"dots.and.spaces here", "dots-and-spaces-here"},
	}
	for _, c := range cases {
		if got := SanitizeID(c.in); got != c.want {
			t.Errorf("SanitizeID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeID_PreservesExistingSlugs(t *testing.T) {
	// An id produced by Slugify must map to itself, otherwise deletes
	// would miss the file the create wrote.
	for _, title := range []string{"Hello, World!", "Field Recording", "a  b  c"} {
		s := Slugify(title)
		if got := SanitizeID(s); got != s {
			t.Errorf("SanitizeID(Slugify(%q)) = %q, want %q", title, got, s)
		}
	}
}
