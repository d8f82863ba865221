package llm

import (
	"context"
	"sync"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/brevis/internal/common"
)

func newTestFactory() *ProviderFactory {
	return NewProviderFactory(
		&common.GeminiConfig{Model: "gemini-3-flash-preview"},
		&common.ClaudeConfig{Model: "claude-haiku-3-5-20241022"},
		&common.LLMConfig{DefaultProvider: common.LLMProviderGemini},
		arbor.NewLogger(),
	)
}

// The card-batch worker pool asks for clients from several goroutines
// at once, so lazy construction must hand every caller the same handle.
func TestGetClaudeClientConcurrent(t *testing.T) {
	factory := NewProviderFactory(
		&common.GeminiConfig{Model: "gemini-3-flash-preview"},
		&common.ClaudeConfig{Model: "claude-haiku-3-5-20241022", APIKey: "test-key"},
		&common.LLMConfig{DefaultProvider: common.LLMProviderClaude},
		arbor.NewLogger(),
	)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = factory.GetClaudeClient(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("goroutine %d: GetClaudeClient failed: %v", i, err)
		}
	}
}

func TestGetClaudeClientRequiresKey(t *testing.T) {
	factory := newTestFactory()

	_, err := factory.GetClaudeClient(context.Background())
	if err == nil {
		t.Fatal("expected an error without an API key")
	}
}
