package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
	"github.com/thrivera/catalog-enricher/internal/core/ports"
)

// VoiceGenerator rewrites vendor descriptions into the brand voice. It
// delegates to the remote text generator and resolves every failure into the
// per-collection fallback template, so Generate never returns an error.
type VoiceGenerator struct {
	profile    domain.Profile
	remote     ports.TextGenerator
	logger     *slog.Logger
	transforms []voiceRule
}

type voiceRule struct {
	pattern     *regexp.Regexp
	replacement string
}

func NewVoiceGenerator(profile domain.Profile, remote ports.TextGenerator, logger *slog.Logger) *VoiceGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	rules := make([]voiceRule, 0, len(profile.VoiceTransforms))
	for _, transform := range profile.VoiceTransforms {
		rules = append(rules, voiceRule{
			pattern:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(transform.From) + `\b`),
			replacement: transform.To,
		})
	}
	return &VoiceGenerator{
		profile:    profile,
		remote:     remote,
		logger:     logger,
		transforms: rules,
	}
}

// Generate produces the new description for a product. plainDescription is
// the markup-stripped vendor description; index is the item's position in
// the batch and selects the prompt template deterministically.
// The returned flag reports whether the fallback path was taken.
func (g *VoiceGenerator) Generate(ctx context.Context, product domain.Product, collection domain.Collection, plainDescription string, index int) (string, bool) {
	original := strings.TrimSpace(plainDescription)
	if original == "" {
		original = g.placeholderDescription(product)
	}

	generated, err := g.generateRemote(ctx, product, collection, original, index)
	if err != nil {
		g.logger.Warn("description_fallback",
			"product", product.Title(),
			"collection", string(collection),
			"error", err,
		)
		return g.fallbackDescription(product, collection), true
	}
	return g.EnsureVoice(generated), false
}

func (g *VoiceGenerator) generateRemote(ctx context.Context, product domain.Product, collection domain.Collection, original string, index int) (string, error) {
	if g.remote == nil {
		return "", domain.ErrMissingCredential
	}

	instruction := g.buildInstruction(product.Title(), original, collection, index)
	text, err := g.remote.GenerateDescription(ctx, instruction)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("remote returned empty description")
	}
	return text, nil
}

// buildInstruction renders the prompt template selected by batch position,
// keeping repeated runs reproducible.
func (g *VoiceGenerator) buildInstruction(title, original string, collection domain.Collection, index int) string {
	templates := g.profile.PromptTemplates
	template := templates[index%len(templates)]
	return fmt.Sprintf(template, title, original, string(collection))
}

// EnsureVoice applies the whole-word transform table and guarantees the text
// ends with terminal punctuation.
func (g *VoiceGenerator) EnsureVoice(text string) string {
	out := text
	for _, rule := range g.transforms {
		out = rule.pattern.ReplaceAllString(out, rule.replacement)
	}
	out = strings.TrimSpace(out)
	if out != "" && !strings.HasSuffix(out, ".") && !strings.HasSuffix(out, "!") && !strings.HasSuffix(out, "?") {
		out += "."
	}
	return out
}

func (g *VoiceGenerator) fallbackDescription(product domain.Product, collection domain.Collection) string {
	name := strings.TrimSpace(product.Title())
	if name == "" {
		name = "wellness essential"
	}
	return fmt.Sprintf(g.profile.FallbackFor(collection), name)
}

func (g *VoiceGenerator) placeholderDescription(product domain.Product) string {
	name := strings.TrimSpace(product.Title())
	if name == "" {
		name = "This wellness essential"
	}
	return fmt.Sprintf("%s, a carefully selected addition to our wellness collection.", name)
}
