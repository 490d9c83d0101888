package interview

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/talentscout/hiring-assistant/internal/candidate"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\(?[0-9]{3}\)?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}`)

	// Tried in order; the first match anywhere in the lowercased input wins.
	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?`),
		regexp.MustCompile(`(\d+)\+?\s*yrs`),
		regexp.MustCompile(`(\d+)\+?\s*y\.?e\.?`),
	}
)

// jobTitles is scanned in priority order for the position heuristic.
var jobTitles = []string{
	"developer", "engineer", "analyst", "manager", "designer",
	"architect", "consultant", "specialist", "administrator",
}

// techVocabulary is the fixed keyword table for tech-stack capture. Hits are
// joined in vocabulary order.
var techVocabulary = []string{
	"python", "java", "javascript", "js", "typescript", "ts", "c#", "c++",
	"ruby", "php", "go", "rust", "swift", "kotlin", "react", "angular",
	"vue", "node", "django", "flask", "spring", "rails", "laravel",
	"aws", "azure", "gcp", "sql", "nosql", "mongodb", "mysql",
	"postgresql", "oracle", "docker", "kubernetes", "devops", "ml",
	"ai", "data science", "frontend", "backend", "fullstack",
}

// greetingTokens disqualify a candidate name: a reply that is just a
// greeting must not be captured as the name.
var greetingTokens = []string{"hi", "hello", "hey"}

// ExtractProfile pulls fields out of one free-text reply. It is pure and
// total: a miss leaves the field unset, a field already set is never
// overwritten, and stages outside the collecting phase return the profile
// unchanged.
func ExtractProfile(input string, profile candidate.Profile, stage Stage) candidate.Profile {
	if !stage.Collecting() {
		return profile
	}

	lowered := strings.ToLower(input)
	words := strings.Fields(strings.TrimSpace(input))

	if profile.Name == "" && (stage == StageGreeting || stage == StageCollectingName) {
		profile.Name = extractName(words)
	}

	if profile.Email == "" && strings.Contains(input, "@") && strings.Contains(input, ".") {
		profile.Email = emailPattern.FindString(input)
	}

	if profile.Phone == "" && containsDigit(input) {
		// Stored verbatim, un-normalized.
		profile.Phone = phonePattern.FindString(input)
	}

	if profile.Experience == "" && containsDigit(input) {
		profile.Experience = extractExperience(lowered)
	}

	if profile.Position == "" && len(words) >= 2 {
		profile.Position = extractPosition(input)
	}

	if profile.TechStack == "" && techStackStage(stage) && len(words) >= 3 {
		profile.TechStack = extractTechStack(lowered)
	}

	return profile
}

// techStackStage gates keyword scanning to the stages where the candidate is
// actually describing their stack.
func techStackStage(stage Stage) bool {
	return stage == StageCollectingTechStack || stage == StageTechStackConfirmation
}

// extractName takes the first up to three whitespace-separated tokens,
// rejecting short results and plain greetings.
func extractName(words []string) string {
	if len(words) == 0 {
		return ""
	}
	if len(words) > 3 {
		words = words[:3]
	}

	name := strings.Join(words, " ")
	if len(name) <= 2 {
		return ""
	}

	lowered := strings.ToLower(name)
	for _, token := range greetingTokens {
		if strings.Contains(lowered, token) {
			return ""
		}
	}
	return name
}

func extractExperience(lowered string) string {
	for _, pattern := range experiencePatterns {
		if m := pattern.FindStringSubmatch(lowered); m != nil {
			return fmt.Sprintf("%s years", m[1])
		}
	}
	return ""
}

// extractPosition scans the job-title nouns in priority order and captures a
// window of 20 bytes before and 30 after the first hit, clipped to the input
// bounds and to rune boundaries. The title is located in the same string
// that gets sliced; lowercasing can change byte offsets.
func extractPosition(input string) string {
	for _, title := range jobTitles {
		idx := foldIndex(input, title)
		if idx == -1 {
			continue
		}

		start := idx - 20
		if start < 0 {
			start = 0
		}
		for start < idx && !utf8.RuneStart(input[start]) {
			start++
		}

		end := idx + 30
		if end > len(input) {
			end = len(input)
		}
		for end < len(input) && !utf8.RuneStart(input[end]) {
			end++
		}

		return strings.TrimSpace(input[start:end])
	}
	return ""
}

// foldIndex returns the byte index of the first case-insensitive occurrence
// of the ASCII substring sub within s, or -1.
func foldIndex(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

func extractTechStack(lowered string) string {
	var hits []string
	for _, tech := range techVocabulary {
		if strings.Contains(lowered, tech) {
			hits = append(hits, tech)
		}
	}
	return strings.Join(hits, ", ")
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
