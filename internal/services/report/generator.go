package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/brevis/internal/common"
	"github.com/ternarybob/brevis/internal/interfaces"
	"github.com/ternarybob/brevis/internal/models"
	"github.com/ternarybob/brevis/internal/services/workers"
)

// Generator produces the four report sections from an aggregated dataset.
// Summary, table and coaching are single generation calls; conversation
// cards are generated per batch through a bounded worker pool. Every call is
// fallback-protected: a failed or empty response degrades that section (or
// batch) to composed content and the pipeline continues.
type Generator struct {
	gen          interfaces.GenerationService
	model        string
	batchSize    int
	maxWorkers   int
	batchTimeout time.Duration
	logger       arbor.ILogger
}

// NewGenerator creates a section generator using the given generation
// service. An empty model defers model selection to the service.
func NewGenerator(gen interfaces.GenerationService, config *common.ReportConfig, model string, logger arbor.ILogger) *Generator {
	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = 3
	}
	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 10
	}
	batchTimeout := config.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 30 * time.Second
	}

	return &Generator{
		gen:          gen,
		model:        model,
		batchSize:    batchSize,
		maxWorkers:   maxWorkers,
		batchTimeout: batchTimeout,
		logger:       logger,
	}
}

// GenerateSections generates all report sections in fixed order. The
// returned slice always has one entry per section kind; no section is ever
// omitted on failure.
func (g *Generator) GenerateSections(ctx context.Context, dataset *models.Dataset) []models.SectionResult {
	results := make([]models.SectionResult, 0, len(models.SectionOrder))
	for _, kind := range models.SectionOrder {
		switch kind {
		case models.SectionSummary:
			results = append(results, g.generateSummary(ctx, dataset))
		case models.SectionTable:
			results = append(results, g.generateTable(ctx, dataset))
		case models.SectionCards:
			results = append(results, g.generateCards(ctx, dataset))
		case models.SectionCoaching:
			results = append(results, g.generateCoaching(ctx, dataset))
		}
	}
	return results
}

// AssembleSections joins section results into one markdown document,
// prefixing each with its canonical heading where the content does not
// already carry it.
func AssembleSections(results []models.SectionResult) string {
	parts := make([]string, 0, len(results))
	for _, result := range results {
		switch result.Kind {
		case models.SectionSummary:
			parts = append(parts, HeadingSummary+"\n\n"+result.Content)
		case models.SectionTable:
			parts = append(parts, HeadingTable+"\n\n"+result.Content)
		case models.SectionCards:
			parts = append(parts, HeadingCards+"\n\n"+result.Content)
		case models.SectionCoaching, models.SectionBriefing:
			// Content carries its own headings
			parts = append(parts, result.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// GenerateBriefing produces the whole coaching report document in one
// generation call. A failed or empty response degrades to the composed
// briefing.
func (g *Generator) GenerateBriefing(ctx context.Context, dataset *models.Dataset) models.SectionResult {
	text, err := g.callGeneration(ctx, briefingSystem, buildBriefingPrompt(dataset), briefingParams)
	if err != nil {
		g.logger.Warn().Err(err).Msg("Coaching briefing generation failed, using fallback")
		return models.SectionResult{Kind: models.SectionBriefing, Content: FallbackBriefing(dataset), Degraded: true}
	}
	return models.SectionResult{Kind: models.SectionBriefing, Content: text}
}

func (g *Generator) generateSummary(ctx context.Context, dataset *models.Dataset) models.SectionResult {
	text, err := g.callGeneration(ctx, summarySystem, buildSummaryPrompt(dataset), summaryParams)
	if err != nil {
		g.logger.Warn().Err(err).Msg("Executive summary generation failed, using fallback")
		return models.SectionResult{Kind: models.SectionSummary, Content: FallbackSummary(dataset), Degraded: true}
	}
	return models.SectionResult{Kind: models.SectionSummary, Content: text}
}

func (g *Generator) generateTable(ctx context.Context, dataset *models.Dataset) models.SectionResult {
	text, err := g.callGeneration(ctx, tableSystem, buildTablePrompt(dataset), tableParams)
	if err != nil {
		g.logger.Warn().Err(err).Msg("Performance table generation failed, using fallback")
		return models.SectionResult{Kind: models.SectionTable, Content: FallbackTable(dataset), Degraded: true}
	}
	return models.SectionResult{Kind: models.SectionTable, Content: text}
}

func (g *Generator) generateCoaching(ctx context.Context, dataset *models.Dataset) models.SectionResult {
	text, err := g.callGeneration(ctx, coachingSystem, buildCoachingPrompt(dataset), coachingParams)
	if err != nil {
		g.logger.Warn().Err(err).Msg("Team coaching generation failed, using fallback")
		return models.SectionResult{Kind: models.SectionCoaching, Content: FallbackCoaching(), Degraded: true}
	}
	return models.SectionResult{Kind: models.SectionCoaching, Content: text}
}

// generateCards runs one generation call per batch through a bounded worker
// pool. Each batch has an independent timeout; on expiry or failure only
// that batch falls back. Outputs are written to indexed slots so the
// assembled text preserves batch order regardless of completion order.
func (g *Generator) generateCards(ctx context.Context, dataset *models.Dataset) models.SectionResult {
	if len(dataset.Meetings) == 0 {
		return models.SectionResult{Kind: models.SectionCards, Content: "No qualified meetings found."}
	}

	batches := models.SplitBatches(dataset.Meetings, g.batchSize)
	outputs := make([]string, len(batches))
	degraded := make([]bool, len(batches))

	pool := workers.NewPool(g.maxWorkers, g.logger)
	pool.Start()

	for _, batch := range batches {
		batch := batch
		job := func(jobCtx context.Context) error {
			batchCtx, cancel := context.WithTimeout(ctx, g.batchTimeout)
			defer cancel()

			text, err := g.callGeneration(batchCtx, cardsSystem, buildCardsPrompt(batch), cardsParams)
			if err != nil {
				g.logger.Warn().
					Err(err).
					Int("batch", batch.Index).
					Int("meetings", len(batch.Meetings)).
					Msg("Conversation batch generation failed, using fallback cards")
				outputs[batch.Index] = FallbackCards(batch)
				degraded[batch.Index] = true
				// The fallback recovers the batch, so the pool never sees
				// this as a failed job
				return nil
			}

			outputs[batch.Index] = text
			return nil
		}

		if err := pool.Submit(job); err != nil {
			outputs[batch.Index] = FallbackCards(batch)
			degraded[batch.Index] = true
		}
	}

	pool.Wait()

	anyDegraded := false
	for _, d := range degraded {
		if d {
			anyDegraded = true
			break
		}
	}

	return models.SectionResult{
		Kind:     models.SectionCards,
		Content:  strings.Join(outputs, "\n"),
		Degraded: anyDegraded,
	}
}

// callGeneration invokes the generation service for one section call. A call
// fails when the transport errors, the context expires, or the returned text
// is empty or whitespace-only.
func (g *Generator) callGeneration(ctx context.Context, system, prompt string, params sectionParams) (string, error) {
	response, err := g.gen.GenerateContent(ctx, &interfaces.ContentRequest{
		Messages: []interfaces.Message{
			{Role: "user", Content: prompt},
		},
		Model:             g.model,
		Temperature:       params.Temperature,
		MaxTokens:         params.MaxTokens,
		SystemInstruction: system,
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(response.Text)
	if text == "" {
		return "", fmt.Errorf("generation returned empty text")
	}
	return text, nil
}
