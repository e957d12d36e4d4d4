package common

import (
	"regexp"
	"strings"
)

// Masked replaces every sensitive value.
const Masked = "***MASKED***"

// SensitivePattern matches a secret inside free text such as a JSON body.
type SensitivePattern struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
	Keys        []string // attribute keys masked outright (case-insensitive)
}

// jsonField builds a pattern for "key": "value" and key=value forms.
func jsonField(name, keys string, attrKeys ...string) SensitivePattern {
	return SensitivePattern{
		Name:        name,
		Regex:       regexp.MustCompile(`(?i)("?(?:` + keys + `)"?\s*[:=]\s*)("[^"]*"|[^",}\]\s&]+)`),
		Replacement: `${1}"` + Masked + `"`,
		Keys:        attrKeys,
	}
}

// DefaultSensitivePatterns covers the secrets that tend to show up in --data payloads.
var DefaultSensitivePatterns = []SensitivePattern{
	jsonField("password", `password|passwd|pwd`, "password", "passwd", "pwd"),
	jsonField("api_key", `api[_-]?key|apikey`, "api_key", "apikey", "api-key"),
	jsonField("token", `access[_-]?token|auth[_-]?token|refresh[_-]?token|token`, "token", "access_token", "auth_token", "refresh_token"),
	jsonField("secret", `client[_-]?secret|secret`, "secret", "client_secret"),
	// bearer must run before authorization, which would otherwise swallow the scheme word
	{
		Name:        "bearer_token",
		Regex:       regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]+=*`),
		Replacement: "Bearer " + Masked,
	},
	jsonField("authorization", `authorization`, "authorization"),
}

// Masker handles masking of sensitive information in logs
type Masker struct {
	patterns []SensitivePattern
	enabled  bool
}

// NewMasker creates a new masker with default patterns
func NewMasker() *Masker {
	return &Masker{patterns: DefaultSensitivePatterns, enabled: true}
}

// SetEnabled enables or disables masking
func (m *Masker) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// IsEnabled returns whether masking is enabled
func (m *Masker) IsEnabled() bool {
	return m.enabled
}

// MaskString masks sensitive information in a string
func (m *Masker) MaskString(input string) string {
	if !m.enabled {
		return input
	}
	result := input
	for _, p := range m.patterns {
		result = p.Regex.ReplaceAllString(result, p.Replacement)
	}
	return result
}

// MaskValue masks a log attribute by key, falling back to pattern matching
// on string values.
func (m *Masker) MaskValue(key string, value any) any {
	if !m.enabled {
		return value
	}
	lowerKey := strings.ToLower(key)
	for _, p := range m.patterns {
		for _, k := range p.Keys {
			if lowerKey == k {
				return Masked
			}
		}
	}
	if s, ok := value.(string); ok {
		return m.MaskString(s)
	}
	return value
}
