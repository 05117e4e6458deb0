package annotate

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Confidence constants per pattern family. Color markup always wins
// ties within a category list.
const (
	confColorMarkup    = 0.95
	confNEROrg         = 0.75
	confNERPerson      = 0.70
	confRole           = 0.85
	confAmountColored  = 0.75
	confAmountPlain    = 0.80
	confPercent        = 0.80
	confLegalRef       = 0.85
	confContextualDate = 0.80
	confPayment        = 0.75
)

// PatternConfig is the overridable part of the pattern tables. Zero
// fields fall back to the built-in defaults.
type PatternConfig struct {
	RoleWords       []string `yaml:"role_words"`
	PaymentKeywords []string `yaml:"payment_keywords"`
	FinancialCues   []string `yaml:"financial_cues"`
	PartyCues       []string `yaml:"party_cues"`
	LegalRefCues    []string `yaml:"legal_ref_cues"`
}

func defaultPatternConfig() PatternConfig {
	return PatternConfig{
		RoleWords:       []string{"Buyer", "Seller", "Purchaser", "Vendor", "Target", "Acquirer"},
		PaymentKeywords: []string{"upfront", "milestone", "earnout", "royalty", "escrow"},
		FinancialCues: []string{
			"purchase price", "consideration", "payment", "milestone", "earnout",
			"royalty", "cash", "$", "million", "thousand",
		},
		PartyCues:    []string{"buyer", "seller", "purchaser", "vendor", "target", "acquirer"},
		LegalRefCues: []string{"article", "section", "subsection", "exhibit", "schedule"},
	}
}

// Patterns is the immutable pattern/keyword table for the fusion
// engine. Built once at startup and passed by reference; nothing in it
// is mutated per call.
type Patterns struct {
	roleRe     *regexp.Regexp
	currencyRe *regexp.Regexp
	percentRe  *regexp.Regexp

	articleRe *regexp.Regexp
	sectionRe *regexp.Regexp
	exhibitRe *regexp.Regexp

	executionDateRe *regexp.Regexp
	closingDateRe   *regexp.Regexp

	// paymentOrder fixes the iteration order so repeated annotation of
	// the same page yields identical records.
	paymentOrder []string
	paymentRes   map[string]*regexp.Regexp

	financialCues []string
	partyCues     []string
	legalRefCues  []string
}

// NewPatterns compiles the pattern tables from the given config.
func NewPatterns(cfg PatternConfig) (*Patterns, error) {
	def := defaultPatternConfig()
	if len(cfg.RoleWords) == 0 {
		cfg.RoleWords = def.RoleWords
	}
	if len(cfg.PaymentKeywords) == 0 {
		cfg.PaymentKeywords = def.PaymentKeywords
	}
	if len(cfg.FinancialCues) == 0 {
		cfg.FinancialCues = def.FinancialCues
	}
	if len(cfg.PartyCues) == 0 {
		cfg.PartyCues = def.PartyCues
	}
	if len(cfg.LegalRefCues) == 0 {
		cfg.LegalRefCues = def.LegalRefCues
	}

	roleRe, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoteAll(cfg.RoleWords), "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile role pattern: %w", err)
	}

	paymentRes := make(map[string]*regexp.Regexp, len(cfg.PaymentKeywords))
	for _, kw := range cfg.PaymentKeywords {
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(kw) + `.*?(?:\$[\d,]+|payment)`)
		if err != nil {
			return nil, fmt.Errorf("compile payment pattern %q: %w", kw, err)
		}
		paymentRes[kw] = re
	}

	return &Patterns{
		roleRe:     roleRe,
		currencyRe: regexp.MustCompile(`(?i)\$[\d,]+(?:\.\d{2})?(?:\s*(?:million|billion|thousand))?`),
		percentRe:  regexp.MustCompile(`\d+(?:\.\d+)?%`),

		articleRe: regexp.MustCompile(`(?i)ARTICLE\s+(?:[IVXLCDM]+|\d+)`),
		sectionRe: regexp.MustCompile(`(?i)(?:SECTION|Section)\s+\d+(?:\.\d+)*`),
		exhibitRe: regexp.MustCompile(`(?i)(?:Exhibit|Schedule)\s+[A-Z\d]+`),

		executionDateRe: regexp.MustCompile(`(?i)(?:executed|signed|entered into).*?(?:on|as of)\s*([A-Za-z]+ \d{1,2},? \d{4})`),
		closingDateRe:   regexp.MustCompile(`(?i)(?:closing|completion).*?(?:on|by)\s*([A-Za-z]+ \d{1,2},? \d{4})`),

		paymentOrder: cfg.PaymentKeywords,
		paymentRes:   paymentRes,

		financialCues: lowerAll(cfg.FinancialCues),
		partyCues:     lowerAll(cfg.PartyCues),
		legalRefCues:  lowerAll(cfg.LegalRefCues),
	}, nil
}

// DefaultPatterns returns the built-in tables. The defaults always
// compile; a failure here is a programming error.
func DefaultPatterns() *Patterns {
	p, err := NewPatterns(PatternConfig{})
	if err != nil {
		panic(err)
	}
	return p
}

// LoadPatterns reads a YAML override file and merges it over the
// defaults. An empty path yields the defaults.
func LoadPatterns(path string) (*Patterns, error) {
	if path == "" {
		return DefaultPatterns(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern config: %w", err)
	}
	var cfg PatternConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse pattern config: %w", err)
	}
	return NewPatterns(cfg)
}

func quoteAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, regexp.QuoteMeta(w))
	}
	return out
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, strings.ToLower(w))
	}
	return out
}
