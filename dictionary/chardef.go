package dictionary

// DefaultCategory is the synthetic category a character falls back to when
// no code-point range covers it.
const DefaultCategory = "DEFAULT"

// CharCategory describes how unknown-word generation should treat
// characters classified under this category.
type CharCategory struct {
	Name         string
	InvokeAlways bool
	Group        bool
	Length       uint8
}

// codePointRange is one evaluated-in-file-order entry of char_defs.bin: a
// closed code-point interval plus its primary and compatible categories.
type codePointRange struct {
	From, To rune
	Primary  string
	Compat   []string
}

// charDefs is the full character-classification table: category
// definitions keyed by name, plus the ordered list of code-point ranges.
type charDefs struct {
	categories map[string]CharCategory
	ranges     []codePointRange
}

// categoriesFor returns the ordered, deduplicated set of category names
// that apply to ch: the union of the primary and compat categories of
// every range containing ch, evaluated in file order. Falls back to
// DefaultCategory if no range covers ch. Always nonempty.
func (d *charDefs) categoriesFor(ch rune) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, r := range d.ranges {
		if ch < r.From || ch > r.To {
			continue
		}
		add(r.Primary)
		for _, c := range r.Compat {
			add(c)
		}
	}
	if len(out) == 0 {
		add(DefaultCategory)
	}
	return out
}

// category looks up the full definition for a category name once, so
// callers that need more than one field don't repeat the map lookup.
func (d *charDefs) category(name string) (CharCategory, bool) {
	c, ok := d.categories[name]
	return c, ok
}

func (d *charDefs) invokeAlways(name string) bool {
	c, _ := d.category(name)
	return c.InvokeAlways
}

func (d *charDefs) groups(name string) bool {
	c, _ := d.category(name)
	return c.Group
}

func (d *charDefs) lengthLimit(name string) uint8 {
	c, _ := d.category(name)
	return c.Length
}

// compatible reports whether the next character, classified under
// nextCats, is compatible with a run being grouped under category k
// (whose originating character carries category set baseCats), per
// spec §4.3: nextCats contains k (this also covers "k is one of its
// compat-categories," since categoriesFor already folds compat categories
// into the per-character set), or both baseCats and nextCats contain
// DEFAULT.
func compatible(k string, baseCats, nextCats []string) bool {
	for _, c := range nextCats {
		if c == k {
			return true
		}
	}
	return contains(baseCats, DefaultCategory) && contains(nextCats, DefaultCategory)
}

func contains(set []string, name string) bool {
	for _, c := range set {
		if c == name {
			return true
		}
	}
	return false
}
