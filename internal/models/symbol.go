package models

import "strings"

// SymbolEntry maps a shorthand symbol to its meaning in three domains,
// plus the keywords that hint at each usage.
type SymbolEntry struct {
	Symbol    string `json:"symbol" yaml:"symbol"`
	Physics   string `json:"physics" yaml:"physics"`
	Biology   string `json:"biology" yaml:"biology"`
	Economics string `json:"economics" yaml:"economics"`
	Triggers  string `json:"triggers" yaml:"triggers"` // comma-separated
}

// Keywords splits Triggers into trimmed, non-empty keywords.
func (s SymbolEntry) Keywords() []string {
	parts := strings.Split(s.Triggers, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}
