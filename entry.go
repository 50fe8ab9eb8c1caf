package docindex

// Category distinguishes whole-page entries from section entries.
type Category int

// Category values. The zero value is not a valid category.
const (
	CategoryUnknown Category = iota
	CategoryPage
	CategorySection
)

// String returns the wire name of the category.
func (c Category) String() string {
	switch c {
	case CategoryPage:
		return "page"
	case CategorySection:
		return "section"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return c == CategoryPage || c == CategorySection
}

// ParseCategory converts a wire name into a Category.
// Returns EMALFORMED for names outside the closed set.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "page":
		return CategoryPage, nil
	case "section":
		return CategorySection, nil
	default:
		return CategoryUnknown, Errorf(EMALFORMED, "unknown category %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, Errorf(EMALFORMED, "unknown category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Entry is one indexed unit of documentation content: a page or a section
// within a page. JSON keys match the artifact format.
type Entry struct {
	// Location is a site-relative URL path, possibly with a #fragment.
	// Empty refers to the site root.
	Location string   `json:"location"`
	Page     string   `json:"page"`
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// Validate returns an error if the entry contains invalid fields. Every
// string field may be empty; only the category is constrained.
func (e *Entry) Validate() error {
	if !e.Category.Valid() {
		return Errorf(EMALFORMED, "entry category required")
	}
	return nil
}

// FilterCategory returns the entries of the given category, preserving order.
func FilterCategory(entries []Entry, c Category) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// Limit returns at most n leading entries. Non-positive n returns all.
func Limit(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}
