package confrontation

import (
	"strings"
	"unicode"

	"afom-board-be/internal/entity"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matcher proposes whether two shortlisted texts relate.
type Matcher interface {
	Match(a, b string) bool
}

type MatcherFunc func(a, b string) bool

func (f MatcherFunc) Match(a, b string) bool { return f(a, b) }

// NoMatch disables auto-fill.
var NoMatch = MatcherFunc(func(string, string) bool { return false })

var defaultStopWords = []string{
	"a", "au", "aux", "avec", "ce", "ces", "d", "dans", "de", "des", "du",
	"elle", "en", "est", "et", "il", "ils", "l", "la", "le", "les", "leur",
	"leurs", "mais", "ne", "nos", "notre", "nous", "on", "ou", "par", "pas",
	"plus", "pour", "qu", "que", "qui", "sa", "se", "ses", "son", "sur",
	"un", "une", "vos", "votre", "vous", "y",
}

// LexicalMatcher matches two texts when they share at least one token after
// case and diacritic folding and stop-word removal.
type LexicalMatcher struct {
	stopWords map[string]struct{}
}

func NewLexicalMatcher(extraStopWords ...string) *LexicalMatcher {
	m := &LexicalMatcher{stopWords: make(map[string]struct{})}
	for _, w := range defaultStopWords {
		m.stopWords[w] = struct{}{}
	}
	for _, w := range extraStopWords {
		m.stopWords[Fold(w)] = struct{}{}
	}
	return m
}

func (m *LexicalMatcher) Match(a, b string) bool {
	left := m.Tokens(a)
	if len(left) == 0 {
		return false
	}
	for tok := range m.Tokens(b) {
		if _, ok := left[tok]; ok {
			return true
		}
	}
	return false
}

// Tokens returns the folded, stop-word free token set of s.
func (m *LexicalMatcher) Tokens(s string) map[string]struct{} {
	fields := strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, stop := m.stopWords[f]; stop {
			continue
		}
		out[f] = struct{}{}
	}
	return out
}

// Fold lower-cases s and strips combining marks, so "Équipe" and "equipe" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// AutoFill proposes a check for every row/column pair the matcher accepts.
func AutoFill(s entity.Shortlist, m Matcher) []entity.Cell {
	if m == nil {
		m = NoMatch
	}
	var cells []entity.Cell
	for _, r := range Rows(s) {
		for _, c := range Columns(s) {
			if m.Match(r.Item.Content, c.Item.Content) {
				cells = append(cells, entity.Cell{RowId: r.Item.NoteId, ColumnId: c.Item.NoteId})
			}
		}
	}
	return cells
}
