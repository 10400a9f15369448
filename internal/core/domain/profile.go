package domain

import "strings"

// CollectionSpec describes one collection in the voice profile: the
// canonical tags (insertion order becomes the comma-joined tag output) and
// the weighted keyword list used by the scoring classifier.
type CollectionSpec struct {
	Name     Collection `yaml:"name" json:"name"`
	Tags     []string   `yaml:"tags" json:"tags"`
	Keywords []string   `yaml:"keywords" json:"keywords"`
}

// DetectionGroup is one step of the first-match classifier. Group order is
// the hand-specified priority order and must be preserved exactly.
type DetectionGroup struct {
	Collection Collection `yaml:"collection" json:"collection"`
	Keywords   []string   `yaml:"keywords" json:"keywords"`
}

// VoiceTransform rewrites one generic word into brand voice, whole-word and
// case-insensitive.
type VoiceTransform struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// TaxonomyEntry maps a collection onto the Google Shopping category path and
// its two collection-specific custom labels.
type TaxonomyEntry struct {
	Category     string `yaml:"category" json:"category"`
	CustomLabel0 string `yaml:"custom_label_0" json:"custom_label_0"`
	CustomLabel3 string `yaml:"custom_label_3" json:"custom_label_3"`
}

// Profile is the versioned brand configuration injected into every pipeline
// step: keyword tables, voice transforms, prompt and fallback templates, SEO
// clauses and marketplace taxonomy. Defaults are compiled in; deployments
// may override the whole profile from YAML.
type Profile struct {
	Collections    []CollectionSpec `yaml:"collections"`
	Default        Collection       `yaml:"default"`
	DetectionOrder []DetectionGroup `yaml:"detection_order"`

	VoiceTransforms   []VoiceTransform      `yaml:"voice_transforms"`
	PromptTemplates   []string              `yaml:"prompt_templates"`
	FallbackTemplates map[Collection]string `yaml:"fallback_templates"`
	MarkerPhrases     []string              `yaml:"marker_phrases"`

	SEOOpenings map[Collection]string `yaml:"seo_openings"`
	SEOClosing  string                `yaml:"seo_closing"`

	Taxonomy         map[Collection]TaxonomyEntry `yaml:"taxonomy"`
	CustomIndicators []string                     `yaml:"custom_indicators"`

	BrandName       string   `yaml:"brand_name"`
	BrandLabel      string   `yaml:"brand_label"`
	ClosingSentence string   `yaml:"closing_sentence"`
	ApprovedOpeners []string `yaml:"approved_openers"`
	BannedOpener    string   `yaml:"banned_opener"`
}

// Spec returns the collection spec, falling back to the default collection.
func (p Profile) Spec(c Collection) CollectionSpec {
	var fallback CollectionSpec
	for _, spec := range p.Collections {
		if spec.Name == c {
			return spec
		}
		if spec.Name == p.Default {
			fallback = spec
		}
	}
	return fallback
}

// JoinedTags renders the canonical comma-joined tag string for a collection.
func (p Profile) JoinedTags(c Collection) string {
	return strings.Join(p.Spec(c).Tags, ", ")
}

// TagTokens returns every collection tag lower-cased; the selective-mode
// sniff test treats any of them in a product's tag field as "already ours".
func (p Profile) TagTokens() []string {
	var tokens []string
	for _, spec := range p.Collections {
		for _, tag := range spec.Tags {
			tokens = append(tokens, strings.ToLower(tag))
		}
	}
	return tokens
}

// TaxonomyFor looks up the shopping taxonomy entry, falling back to the
// default collection's entry for unrecognized values.
func (p Profile) TaxonomyFor(c Collection) TaxonomyEntry {
	if entry, ok := p.Taxonomy[c]; ok {
		return entry
	}
	return p.Taxonomy[p.Default]
}

// FallbackFor returns the remote-free description template for a collection.
func (p Profile) FallbackFor(c Collection) string {
	if tpl, ok := p.FallbackTemplates[c]; ok {
		return tpl
	}
	return p.FallbackTemplates[p.Default]
}

// SEOOpeningFor returns the collection-specific SEO opening clause.
func (p Profile) SEOOpeningFor(c Collection) string {
	if opening, ok := p.SEOOpenings[c]; ok {
		return opening
	}
	return p.SEOOpenings[p.Default]
}

// DefaultProfile is the Thrivera brand knowledge base.
func DefaultProfile() Profile {
	return Profile{
		Collections: []CollectionSpec{
			{
				Name: CollectionMindAndMood,
				Tags: []string{"Mind", "Mood", "focus"},
				Keywords: []string{
					"essential oil", "aromatherapy", "diffuser", "scent", "fragrance",
					"focus", "concentration", "mental", "clarity", "meditation",
					"mindfulness", "stress", "anxiety", "mood", "emotional",
					"calm mind", "mental wellness",
				},
			},
			{
				Name: CollectionMovementAndFlow,
				Tags: []string{"movement", "mobility", "stretch"},
				Keywords: []string{
					"yoga", "exercise", "fitness", "stretch", "mobility", "movement",
					"flow", "muscle", "joint", "flexibility", "workout", "active",
					"physical", "body", "posture", "balance", "strength",
				},
			},
			{
				Name: CollectionRestAndSleep,
				Tags: []string{"Rest", "Sleep", "night"},
				Keywords: []string{
					"sleep", "night", "bedtime", "pillow", "mattress", "blanket",
					"rest", "relaxation", "calm", "peaceful", "soothing", "nighttime",
					"evening", "slumber", "tranquil", "serene",
				},
			},
			{
				Name: CollectionSupportiveLiving,
				Tags: []string{"Safety", "Support", "confidence"},
				Keywords: []string{
					"support", "safety", "secure", "confidence", "home",
					"daily living", "independence", "assist", "help", "stability",
					"reliable", "comfort zone", "protection", "security",
				},
			},
			{
				Name: CollectionEverydayComforts,
				Tags: []string{"comfort", "ease", "cushion"},
				Keywords: []string{
					"comfort", "cushion", "soft", "cozy", "ease", "gentle", "plush",
					"padded", "ergonomic", "everyday", "daily", "convenient",
					"simple", "effortless",
				},
			},
		},
		Default: CollectionEverydayComforts,
		DetectionOrder: []DetectionGroup{
			{
				Collection: CollectionMindAndMood,
				Keywords: []string{
					"focus", "clarity", "mind", "mood", "meditation", "stress",
					"anxiety", "calm", "mental", "cognitive", "brain", "concentration",
				},
			},
			{
				Collection: CollectionRestAndSleep,
				Keywords: []string{
					"sleep", "rest", "night", "bedtime", "pillow", "mattress",
					"blanket", "relaxation", "dream", "insomnia", "slumber",
				},
			},
			{
				Collection: CollectionMovementAndFlow,
				Keywords: []string{
					"movement", "mobility", "stretch", "exercise", "fitness", "yoga",
					"flow", "flexibility", "muscle", "joint", "physical", "active",
				},
			},
			{
				Collection: CollectionSupportiveLiving,
				Keywords: []string{
					"safety", "support", "confidence", "secure", "protection",
					"assist", "stability", "balance", "help", "aid", "therapeutic",
				},
			},
		},
		VoiceTransforms: []VoiceTransform{
			{From: "high-quality", To: "mindfully crafted"},
			{From: "premium", To: "thoughtfully designed"},
			{From: "excellent", To: "beautifully crafted"},
			{From: "helps", To: "gently supports"},
			{From: "provides", To: "nurtures you with"},
			{From: "comfortable", To: "gently supportive"},
			{From: "effective", To: "naturally beneficial"},
			{From: "perfect", To: "beautifully suited"},
			{From: "great", To: "wonderfully supportive"},
		},
		PromptTemplates: defaultPromptTemplates(),
		FallbackTemplates: map[Collection]string{
			CollectionMindAndMood:      "Nurture your mental wellness with this thoughtfully designed %s. Mindfully crafted to support your daily tranquility.",
			CollectionMovementAndFlow:  "Support your active lifestyle with this gently effective %s. Beautifully designed to enhance your movement.",
			CollectionRestAndSleep:     "Create your peaceful sanctuary with this lovingly made %s. Thoughtfully designed to support restful sleep.",
			CollectionSupportiveLiving: "Enhance your daily confidence with this reliably supportive %s. Mindfully crafted to nurture your independence.",
			CollectionEverydayComforts: "Embrace daily comfort with this gently supportive %s. Thoughtfully designed to enhance your wellness routine.",
		},
		MarkerPhrases: []string{
			"mindfully crafted", "thoughtfully designed", "gently supports",
			"nurtures you with", "lovingly made", "wellness essential",
		},
		SEOOpenings: map[Collection]string{
			CollectionMindAndMood:      "Mindfully selected %s for mental wellness & emotional balance.",
			CollectionMovementAndFlow:  "Thoughtfully curated %s to support your active wellness journey.",
			CollectionRestAndSleep:     "Carefully chosen %s for peaceful rest & restorative sleep.",
			CollectionSupportiveLiving: "Lovingly selected %s to enhance daily confidence & independence.",
			CollectionEverydayComforts: "Wellness-focused %s for everyday comfort & well-being.",
		},
		SEOClosing: "Shop Thrivera's curated wellness collection.",
		Taxonomy: map[Collection]TaxonomyEntry{
			CollectionMindAndMood: {
				Category:     "Health & Beauty > Personal Care > Aromatherapy",
				CustomLabel0: "Mind-and-Mood",
				CustomLabel3: "aromatherapy",
			},
			CollectionMovementAndFlow: {
				Category:     "Sporting Goods > Exercise & Fitness",
				CustomLabel0: "Movement-and-Flow",
				CustomLabel3: "fitness",
			},
			CollectionRestAndSleep: {
				Category:     "Home & Garden > Decor > Home Fragrance",
				CustomLabel0: "Rest-and-Sleep",
				CustomLabel3: "sleep-wellness",
			},
			CollectionSupportiveLiving: {
				Category:     "Health & Beauty > Health Care > Mobility & Daily Living Aids",
				CustomLabel0: "Supportive-Living",
				CustomLabel3: "daily-living",
			},
			CollectionEverydayComforts: {
				Category:     "Home & Garden > Household Supplies",
				CustomLabel0: "Everyday-Comforts",
				CustomLabel3: "comfort",
			},
		},
		CustomIndicators: []string{"custom", "handmade", "personalized", "vintage"},
		BrandName:        "Thrivera",
		BrandLabel:       "thrivera-wellness",
		ClosingSentence:  "Experience the Thrivera difference.",
		ApprovedOpeners: []string{
			"Discover", "Experience", "Embrace", "Enjoy", "Find", "Create", "Welcome",
		},
		BannedOpener: "Indulge",
	}
}

func defaultPromptTemplates() []string {
	return []string{
		`Transform this product description into Thrivera's wellness-focused voice. Keep all specific details like size, color, flavor, scent, material, dimensions, or technical specifications from the original.

Original Product: %[1]s
Original Description: %[2]s
Collection: %[3]s

IMPORTANT: DO NOT start with "Indulge" - this word is overused. Instead start with: "Discover," "Experience," "Embrace," "Enjoy," "Find," "Create," or "Welcome."

Create a description that:
- NEVER starts with "Indulge" or uses "indulge" anywhere
- Focuses on wellness benefits and how it enhances daily life
- Uses warm, inclusive, supportive language
- Uses varied opening words like "Discover," "Experience," "Embrace," "Enjoy," "Find," "Create"
- Keeps ALL specific product details (size, color, flavor, scent, material, etc.)
- Mentions the collection context (%[3]s)
- Is 2-3 paragraphs, around 150-200 words
- Ends with "Experience the Thrivera difference."

Write only the product description, no titles or extra text.`,
		`Rewrite the product copy below in Thrivera's warm wellness voice while preserving every concrete attribute (size, color, flavor, scent, material, dimensions, technical specs).

Product: %[1]s
Vendor copy: %[2]s
Thrivera collection: %[3]s

Rules:
- Never use the word "indulge" anywhere, and never open with it
- Open with one of: "Discover," "Experience," "Embrace," "Enjoy," "Find," "Create," "Welcome"
- Speak to wellness benefits and how the product fits into daily rituals
- Reference the %[3]s collection naturally
- 2-3 paragraphs, roughly 150-200 words
- Close with the sentence "Experience the Thrivera difference."

Return only the rewritten description.`,
		`You write product descriptions for Thrivera, a wellness brand with a warm, supportive voice.

Rework this listing without losing any factual detail (size, color, scent, flavor, material, dimensions, specifications):

Title: %[1]s
Current description: %[2]s
Assigned collection: %[3]s

Constraints:
- The word "indulge" is banned in any form
- Start with "Discover," "Experience," "Embrace," "Enjoy," "Find," "Create," or "Welcome"
- Mention how the product supports the %[3]s collection's purpose
- Keep it to 2-3 paragraphs, about 150-200 words
- End exactly with "Experience the Thrivera difference."

Output the description text only.`,
	}
}
