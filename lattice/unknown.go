package lattice

import "github.com/gomorph/ipadic/dictionary"

// GenerateUnknowns registers every unknown-word candidate the lattice
// needs, per spec.md §4.3. For each rune position, every category that
// rune belongs to either contributes a candidate because the dictionary
// found nothing starting there, or because the category is marked
// invoke_always and must fire regardless. maxUnknownLength is the
// tokenizer-level cap (spec.md §4.5's max_unknown_length) applied on top
// of each category's own length_limit.
func GenerateUnknowns(l *Lattice, d *dictionary.Dictionary, runes []rune, maxUnknownLength int) {
	for pos := 0; pos < len(runes); pos++ {
		generateForPosition(l, d, runes, pos, maxUnknownLength)
	}
}

func generateForPosition(l *Lattice, d *dictionary.Dictionary, runes []rune, pos, maxUnknownLength int) {
	cats := d.CharCategories(runes[pos])
	hasDictMatch := l.HasNodesStartingAt(pos)

	for _, cat := range cats {
		if hasDictMatch && !d.InvokeAlways(cat) {
			continue
		}

		templates := d.UnknownTemplates(cat)
		if len(templates) == 0 {
			templates = d.UnknownTemplates(dictionary.DefaultCategory)
		}
		if len(templates) == 0 {
			continue
		}

		if d.Groups(cat) {
			end := groupEnd(d, runes, pos, cat, cats, maxUnknownLength)
			surface := string(runes[pos:end])
			for _, t := range templates {
				l.AddUnknown(pos, end, surface, t)
			}
			continue
		}

		limit := int(d.LengthLimit(cat))
		if limit < 1 {
			limit = 1
		}
		if limit > maxUnknownLength {
			limit = maxUnknownLength
		}
		maxEnd := pos + limit
		if maxEnd > len(runes) {
			maxEnd = len(runes)
		}
		for end := pos + 1; end <= maxEnd; end++ {
			surface := string(runes[pos:end])
			for _, t := range templates {
				l.AddUnknown(pos, end, surface, t)
			}
		}
	}
}

// groupEnd extends a group-mode run starting at pos (classified under
// baseCats) as long as each following character remains compatible with
// cat, per spec.md §4.3's category-compatibility rule, capped at
// maxUnknownLength characters total.
func groupEnd(d *dictionary.Dictionary, runes []rune, pos int, cat string, baseCats []string, maxUnknownLength int) int {
	limit := pos + maxUnknownLength
	end := pos + 1
	for end < len(runes) && end < limit {
		nextCats := d.CharCategories(runes[end])
		if !d.CategoryCompatible(cat, baseCats, nextCats) {
			break
		}
		end++
	}
	return end
}
