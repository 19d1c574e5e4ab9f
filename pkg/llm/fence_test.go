package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "upper info string", in: "```JSON\n[1,2]\n```", want: `[1,2]`},
		{name: "single line", in: "```json {\"a\":1}```", want: `{"a":1}`},
		{name: "surrounding space", in: "  \n```json\n{}\n```\n ", want: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}

func TestApplyOptions(t *testing.T) {
	o := Apply(Options{Temperature: 0.7}, WithModel("m"), WithJSON(), WithMaxTokens(10))
	assert.Equal(t, Options{Temperature: 0.7, Model: "m", JSON: true, MaxTokens: 10}, o)
}
