package prompts

import (
	"fmt"
	"regexp"
	"strings"
)

// mergeSeparator joins entries in merged exports.
const mergeSeparator = "\n-------------\n"

// aspectMarker matches an existing aspect-ratio directive: the marker
// token followed by digits and colons.
var aspectMarker = regexp.MustCompile(`--ar\s+[\d:]+`)

// BuildFinalPrompt assembles the canonical final prompt text from
// structured attributes. The output is deterministic and must stay
// byte-for-byte stable: previously generated prompts embed this exact
// format, including the space-padded "-- ar" suffix marker.
func BuildFinalPrompt(a Attributes) string {
	return fmt.Sprintf(
		"%s, %s, %s, %s, %s, %s, %s, %s, %s, -- ar %s",
		a.CoreTheme,
		a.Hair,
		a.Pose,
		a.Outfit,
		a.Atmosphere,
		a.Gaze,
		a.Makeup,
		a.Background,
		a.Details,
		a.AspectRatio,
	)
}

// EnsureAspectRatio appends an "--ar" directive derived from ratio when
// text lacks one, defaulting to 1:1 for an empty ratio. Text that
// already carries a marker passes through unchanged, so the operation
// is idempotent.
func EnsureAspectRatio(text, ratio string) string {
	if aspectMarker.MatchString(text) {
		return text
	}
	if ratio == "" {
		ratio = "1:1"
	}
	return text + " --ar " + ratio
}

// MergeFinalPrompts joins the final texts of the given prompts with the
// separator banner, in input order. Blank entries are dropped, and each
// kept entry is guaranteed an aspect-ratio directive from its record's
// stored ratio.
func MergeFinalPrompts(records []Prompt) string {
	entries := make([]string, 0, len(records))

	for _, p := range records {
		text := strings.TrimSpace(p.FinalPrompt)
		if text == "" {
			continue
		}
		entries = append(entries, EnsureAspectRatio(text, p.AspectRatio))
	}

	return strings.Join(entries, mergeSeparator)
}
