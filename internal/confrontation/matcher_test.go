package confrontation

import (
	"testing"

	"afom-board-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "equipe reactive", Fold("Équipe Réactive"))
	assert.Equal(t, "marche", Fold("MARCHÉ"))
}

func TestLexicalMatcher(t *testing.T) {
	m := NewLexicalMatcher()

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "shared word", a: "Équipe motivée", b: "Recrutement dans l'équipe", want: true},
		{name: "case and accents", a: "MARCHÉ local", b: "marche export", want: true},
		{name: "stop words only", a: "de la", b: "la de", want: false},
		{name: "no overlap", a: "budget serré", b: "concurrence forte", want: false},
		{name: "elision stripped", a: "l'export", b: "export", want: true},
		{name: "empty", a: "", b: "export", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.a, tt.b))
		})
	}
}

func TestLexicalMatcherExtraStopWords(t *testing.T) {
	m := NewLexicalMatcher("Projet")
	assert.False(t, m.Match("projet phare", "nouveau projet"))
}

func TestAutoFill(t *testing.T) {
	a1, f1 := item("Équipe soudée"), item("Budget serré")
	o1, m1 := item("Subvention pour le budget"), item("Départs dans l'équipe")
	s := entity.Shortlist{
		Acquis:       []entity.ShortlistItem{a1},
		Faiblesses:   []entity.ShortlistItem{f1},
		Opportunites: []entity.ShortlistItem{o1},
		Menaces:      []entity.ShortlistItem{m1},
	}

	cells := AutoFill(s, NewLexicalMatcher())

	assert.ElementsMatch(t, []entity.Cell{cell(o1, f1), cell(m1, a1)}, cells)
	assert.Empty(t, AutoFill(s, NoMatch))
	assert.Empty(t, AutoFill(s, nil))
}
