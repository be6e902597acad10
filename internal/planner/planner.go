// Package planner runs one diet plan submission end to end.
package planner

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"diet-planner/internal/export"
	"diet-planner/internal/llm"
	"diet-planner/internal/metrics"
	"diet-planner/internal/profile"
	"diet-planner/internal/prompt"
	"diet-planner/internal/shared"
)

// Plan is the outcome of a successful submission.
type Plan struct {
	ID        string
	Profile   profile.UserProfile
	Prompt    string
	Text      string
	Meta      shared.GenerationMeta
	CreatedAt time.Time

	pdf *export.Artifact
}

// Planner handles the generation of diet plans.
type Planner struct {
	textGen  llm.TextGenerator
	provider string
	recorder *metrics.Recorder
	now      func() time.Time
}

// NewPlanner creates a new Planner instance. recorder may be nil.
func NewPlanner(textGen llm.TextGenerator, provider string, recorder *metrics.Recorder) *Planner {
	return &Planner{
		textGen:  textGen,
		provider: provider,
		recorder: recorder,
		now:      time.Now,
	}
}

// Generate validates the answers, renders the prompt and asks the model for
// a plan. Validation errors are returned before any completion call is made.
// A response that cannot be exported fails with *shared.EncodingError and no
// plan is returned.
func (p *Planner) Generate(ctx context.Context, answers profile.Answers) (*Plan, error) {
	id := uuid.NewString()

	userProfile, err := profile.New(answers)
	if err != nil {
		log.Printf("[%s] rejected submission: %v", id, err)
		p.recorder.RecordSubmission(shared.GenerationMeta{Provider: p.provider}, err)
		return nil, err
	}

	log.Printf("[%s] generating %s plan for %q via %s", id, userProfile.PlanDuration, userProfile.Name, p.provider)
	text := prompt.Render(userProfile)

	start := time.Now()
	resp, err := p.textGen.GenerateContent(ctx, text)
	meta := shared.GenerationMeta{
		Provider: p.provider,
		Usage:    resp.Usage,
		Latency:  time.Since(start),
	}
	if err != nil {
		p.recorder.RecordSubmission(meta, err)
		log.Printf("[%s] completion failed after %s: %v", id, meta.Latency.Round(time.Millisecond), err)
		return nil, fmt.Errorf("failed to generate diet plan: %w", err)
	}

	log.Printf("[%s] plan generated in %s (%d prompt / %d completion tokens)",
		id, meta.Latency.Round(time.Millisecond), meta.Usage.PromptTokens, meta.Usage.CompletionTokens)

	if want, got := userProfile.PlanDuration.Days(), CountDays(resp.Content); got != want {
		log.Printf("[%s] warning: plan covers %d of %d requested days", id, got, want)
	}

	plan := &Plan{
		ID:        id,
		Profile:   userProfile,
		Prompt:    text,
		Text:      resp.Content,
		Meta:      meta,
		CreatedAt: p.now(),
	}

	// Both downloads must be producible before the plan is handed out.
	pdf, err := plan.renderPDF()
	p.recorder.RecordSubmission(meta, err)
	if err != nil {
		log.Printf("[%s] plan cannot be exported: %v", id, err)
		return nil, err
	}
	plan.pdf = &pdf

	return plan, nil
}

// TextArtifact returns the plan as a named plain-text download.
func (p *Plan) TextArtifact() export.Artifact {
	a := export.Text(p.Text)
	a.FileName = export.FileName(p.Profile.Name, p.CreatedAt, "txt")
	return a
}

// PDFArtifact returns the plan as a named PDF download.
func (p *Plan) PDFArtifact() (export.Artifact, error) {
	if p.pdf != nil {
		return *p.pdf, nil
	}
	return p.renderPDF()
}

func (p *Plan) renderPDF() (export.Artifact, error) {
	a, err := export.PDF(p.Text)
	if err != nil {
		return export.Artifact{}, err
	}
	a.FileName = export.FileName(p.Profile.Name, p.CreatedAt, "pdf")
	return a, nil
}

// Artifacts returns both downloads of the plan.
func (p *Plan) Artifacts() (text, pdf export.Artifact, err error) {
	pdf, err = p.PDFArtifact()
	if err != nil {
		return export.Artifact{}, export.Artifact{}, err
	}
	return p.TextArtifact(), pdf, nil
}
