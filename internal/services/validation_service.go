package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rgriss/aimanifesto/config"
	"github.com/rgriss/aimanifesto/internal/database"
	"github.com/rgriss/aimanifesto/internal/llm"
	"github.com/rgriss/aimanifesto/internal/models"
	"github.com/rgriss/aimanifesto/pkg/logger"
	"go.uber.org/zap"
)

// ValidationVerdict is the structured outcome of the validation stage
type ValidationVerdict struct {
	Valid        bool    `json:"valid"`
	Reason       string  `json:"reason"`
	SoftwareName *string `json:"software_name"`
}

// ValidationService is the synchronous request-time gate of the research
// pipeline. It asks the model whether a free-text submission names a real,
// non-duplicate software product. Every failure mode fails closed: the
// verdict is invalid with a stage-specific reason, and nothing is ever
// raised to the caller.
type ValidationService struct {
	client  llm.Completer
	timeout time.Duration
}

func NewValidationService(client llm.Completer, cfg *config.Config) *ValidationService {
	return &ValidationService{
		client:  client,
		timeout: cfg.ValidationTimeout,
	}
}

const validationMaxTokens = 1024

// Validate runs the validation stage for one submission. It blocks the
// request thread for at most one model round trip, bounded by the
// configured timeout.
func (s *ValidationService) Validate(userInput string) ValidationVerdict {
	existingNames := existingToolNames()

	// Fast local duplicate check saves a model round trip for obvious
	// resubmissions
	if match := findDuplicate(userInput, existingNames); match != "" {
		return ValidationVerdict{
			Valid:  false,
			Reason: fmt.Sprintf("%s is already in the catalog.", match),
		}
	}

	prompt := buildValidationPrompt(userInput, existingNames)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	content, err := s.client.Complete(ctx, prompt, validationMaxTokens)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			logger.Log.Error("Anthropic API key is missing")
			return ValidationVerdict{Valid: false, Reason: "Validation service unavailable (missing config)."}
		}
		logger.Log.Error("Tool validation call failed", zap.Error(err))
		return ValidationVerdict{Valid: false, Reason: "Validation service error."}
	}

	block, err := llm.ExtractObject(content)
	if err != nil {
		return ValidationVerdict{Valid: false, Reason: "Invalid response format from validator."}
	}

	var verdict ValidationVerdict
	if err := json.Unmarshal([]byte(block), &verdict); err != nil {
		return ValidationVerdict{Valid: false, Reason: "Failed to parse validation response."}
	}

	return verdict
}

func buildValidationPrompt(userInput string, existingNames []string) string {
	return fmt.Sprintf(`You are a software catalog validator for a directory of AI tools.

User Input: "%s"

Existing tools in the catalog: [%s]

Task:
1. Determine if the User Input describes a real, valid software product.
2. Check if it already exists in the catalog (fuzzy match).
3. If valid and new, extract the canonical software name.

Output JSON only:
{
    "valid": boolean,
    "reason": "string explanation",
    "software_name": "Canonical Name" or null
}`, userInput, strings.Join(existingNames, ", "))
}

func existingToolNames() []string {
	var names []string
	if database.DB != nil {
		database.DB.Model(&models.Tool{}).Pluck("name", &names)
	}
	return names
}

// findDuplicate checks the submission against existing tool names with
// case-insensitive containment matching, e.g. "photoshop" matches "Adobe
// Photoshop". Returns the matched catalog name, or "".
func findDuplicate(userInput string, existingNames []string) string {
	normalizedInput := strings.ToLower(strings.TrimSpace(userInput))
	if normalizedInput == "" {
		return ""
	}

	for _, name := range existingNames {
		normalizedName := strings.ToLower(name)

		if normalizedInput == normalizedName ||
			strings.Contains(normalizedName, normalizedInput) ||
			strings.Contains(normalizedInput, normalizedName) {
			return name
		}

		// Compare the dominant keyword of each side so "Adobe Photoshop
		// CC 2024" still matches an existing "Photoshop"
		inputWord := longestWord(normalizedInput)
		nameWord := longestWord(normalizedName)
		if len(inputWord) > 3 && len(nameWord) > 3 {
			if strings.Contains(nameWord, inputWord) || strings.Contains(inputWord, nameWord) {
				return name
			}
		}
	}

	return ""
}

func longestWord(s string) string {
	longest := ""
	for _, word := range strings.Fields(s) {
		if len(word) > len(longest) {
			longest = word
		}
	}
	return longest
}
