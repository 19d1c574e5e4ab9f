package factory

import (
	"testing"

	"afom-board-be/pkg/llm/gemini"
	"afom-board-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(Config{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	o, ok := p.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", o.BaseURL)

	p, err = NewLLMProvider(Config{Provider: "gemini", GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &gemini.GeminiProvider{}, p)

	_, err = NewLLMProvider(Config{Provider: "gemini"})
	assert.Error(t, err)

	_, err = NewLLMProvider(Config{Provider: "openai"})
	assert.Error(t, err)
}
