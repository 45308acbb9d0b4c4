package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	explanationPolicyOnce sync.Once
	explanationPolicy     *bluemonday.Policy
)

// SanitizeExplanation keeps the inline emphasis explanations use and strips
// everything else.
func SanitizeExplanation(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(explanationSanitizer().Sanitize(trimmed))
}

func explanationSanitizer() *bluemonday.Policy {
	explanationPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("em", "strong", "b", "i", "code", "br")
		explanationPolicy = policy
	})
	return explanationPolicy
}
