package guardrail

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"assist-server/services/assistant-api/internal/infrastructure/metrics"
	"assist-server/services/assistant-api/internal/utils/platformerrors"
)

// Policy is the configuration-derived input safety policy, immutable for
// the process lifetime. Phrases must be lowercase.
type Policy struct {
	BlockedPhrases  []string
	MaxPromptLength int
}

// Validator normalizes free-text input and enforces length and
// blocked-phrase rules before anything reaches the model backend.
type Validator struct {
	policy Policy
	log    zerolog.Logger
}

// NewValidator creates a validator for the given policy.
func NewValidator(policy Policy, log zerolog.Logger) *Validator {
	return &Validator{
		policy: policy,
		log:    log.With().Str("component", "guardrail").Logger(),
	}
}

// Enforce validates text and returns its normalized form. Normalization is
// Unicode NFKC followed by a whitespace trim; every check runs against the
// normalized form. Phrase matching is deliberately conservative: substring,
// case-insensitive, anywhere in the text.
func (v *Validator) Enforce(ctx context.Context, text, fieldName string) (string, error) {
	normalized := strings.TrimSpace(norm.NFKC.String(text))

	if normalized == "" {
		metrics.GuardrailBlocksTotal.WithLabelValues(fieldName, "empty").Inc()
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("%s cannot be empty", fieldName), nil, "")
	}

	if length := utf8.RuneCountInString(normalized); length > v.policy.MaxPromptLength {
		metrics.GuardrailBlocksTotal.WithLabelValues(fieldName, "too_long").Inc()
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("%s exceeds the maximum allowed length of %d characters", fieldName, v.policy.MaxPromptLength), nil, "")
	}

	lowered := strings.ToLower(normalized)
	for _, phrase := range v.policy.BlockedPhrases {
		if strings.Contains(lowered, phrase) {
			v.log.Warn().
				Str("field", fieldName).
				Str("matched_phrase", phrase).
				Msg("input blocked by safety filters")
			metrics.GuardrailBlocksTotal.WithLabelValues(fieldName, "blocked_phrase").Inc()
			return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				"request blocked by safety filters", nil, "")
		}
	}

	return normalized, nil
}
