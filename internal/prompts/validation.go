package prompts

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks the attribute constraints shared by create and
// update: core_theme must be non-blank and aspect_ratio must belong to
// the fixed accepted set.
func (a Attributes) Validate() error {
	if strings.TrimSpace(a.CoreTheme) == "" {
		return fmt.Errorf("%w: core_theme is required", ErrValidation)
	}
	if !slices.Contains(AspectRatios, a.AspectRatio) {
		return fmt.Errorf("%w: aspect_ratio must be one of %s",
			ErrValidation, strings.Join(AspectRatios, ", "))
	}
	return nil
}

// resolveFinalPrompt returns finalPrompt unless it is blank, in which
// case the canonical assembly of the attributes is used.
func resolveFinalPrompt(a Attributes, finalPrompt string) string {
	if strings.TrimSpace(finalPrompt) == "" {
		return BuildFinalPrompt(a)
	}
	return finalPrompt
}
