// Package promptguard screens research questions before they are handed to
// the language model pipeline. Questions are free text from authenticated
// users and still end up inside a model prompt, so obvious injection
// attempts are rejected at the API boundary.
package promptguard

import (
	"regexp"
	"strings"
)

// ThreatType classifies a detected injection attempt
type ThreatType string

const (
	ThreatInstructionOverride ThreatType = "instruction_override"
	ThreatPromptLeak          ThreatType = "prompt_leak"
	ThreatRoleManipulation    ThreatType = "role_manipulation"
	ThreatDelimiterAttack     ThreatType = "delimiter_attack"
)

// Detection is one flagged fragment of a question
type Detection struct {
	Type    ThreatType `json:"type"`
	Excerpt string     `json:"excerpt"`
}

var patternSets = []struct {
	threat   ThreatType
	patterns []*regexp.Regexp
}{
	{
		threat: ThreatInstructionOverride,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(ignore|disregard|forget|override)\s+(all\s+|any\s+)?(previous|prior|above|your)\s+(instructions?|rules|prompts?)`),
			regexp.MustCompile(`(?i)start\s+over\s+with\s+new\s+instructions?`),
		},
	},
	{
		threat: ThreatPromptLeak,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(show|reveal|print|repeat)\s+(me\s+)?(your|the)\s+(system|original|initial|hidden)\s+(prompt|instructions?)`),
			regexp.MustCompile(`(?i)what\s+(is|are|was|were)\s+(your|the)\s+(system|original|initial)\s+(prompt|instructions?)`),
		},
	},
	{
		threat: ThreatRoleManipulation,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(pretend|act\s+as\s+if)\s+(to\s+be|you\s+are|you're)`),
			regexp.MustCompile(`(?i)you\s+are\s+(now|no\s+longer)\s+`),
			regexp.MustCompile(`(?i)assume\s+(the\s+)?(role|identity)\s+of`),
		},
	},
	{
		threat: ThreatDelimiterAttack,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)<\s*/?\s*system\s*>`),
			regexp.MustCompile(`(?i)\[\s*/?\s*(system|inst)\s*\]`),
			regexp.MustCompile("```\\s*system"),
		},
	},
}

// maxExcerptLen bounds the flagged fragment echoed back in logs
const maxExcerptLen = 60

// Screen scans a question and returns any detected injection attempts.
// An empty result means the question is safe to forward.
func Screen(question string) []Detection {
	var detections []Detection
	for _, set := range patternSets {
		for _, pattern := range set.patterns {
			loc := pattern.FindStringIndex(question)
			if loc == nil {
				continue
			}
			detections = append(detections, Detection{
				Type:    set.threat,
				Excerpt: excerpt(question, loc[0], loc[1]),
			})
			break
		}
	}
	return detections
}

func excerpt(s string, start, end int) string {
	fragment := s[start:end]
	if len(fragment) > maxExcerptLen {
		fragment = fragment[:maxExcerptLen]
	}
	return strings.TrimSpace(fragment)
}
