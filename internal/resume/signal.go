// Package resume derives matching signals from raw resume text: a token set
// for the domain heuristic, a skill list, contact details, and an experience
// level. Extraction is pure text analysis; embeddings are attached by the
// caller.
package resume

import (
	"regexp"
	"strings"

	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
	"github.com/Liam-Hayes8/Job-Matcher/internal/vocab"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// Extract builds a ResumeSignal from resume text. The candidate's own name
// and email are stripped from the token set so they cannot influence scoring.
func Extract(text string) *types.ResumeSignal {
	signal := &types.ResumeSignal{
		Tokens: Tokens(text),
		Skills: ExtractSkills(text),
		Level:  DetectLevel(text),
	}

	name, email := ExtractContact(text)
	delete(signal.Tokens, strings.ToLower(email))
	for _, w := range strings.Fields(strings.ToLower(name)) {
		delete(signal.Tokens, w)
	}
	return signal
}

// Tokens returns the lowercased word set of the text, plus any multi-word
// domain vocabulary phrase found in it, so phrase tokens like "full stack"
// survive tokenization.
func Tokens(text string) map[string]bool {
	lower := strings.ToLower(text)
	tokens := make(map[string]bool)
	for _, w := range strings.Fields(lower) {
		w = strings.Trim(w, ",.;:()[]\"'")
		if len(w) > 1 {
			tokens[w] = true
		}
	}
	for _, phrase := range vocab.FinanceTokens {
		if strings.Contains(lower, phrase) {
			tokens[phrase] = true
		}
	}
	for _, phrase := range vocab.SoftwareTokens {
		if strings.Contains(lower, phrase) {
			tokens[phrase] = true
		}
	}
	return tokens
}

// ExtractSkills finds the known skills mentioned in a text. It is used for
// resumes and job descriptions alike so both sides draw from the same
// vocabulary. Results keep first-seen order with duplicates removed.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var skills []string

	add := func(skill string) {
		skill = strings.TrimSpace(strings.ToLower(skill))
		if skill == "" || seen[skill] {
			return
		}
		seen[skill] = true
		skills = append(skills, skill)
	}

	for _, category := range []string{"languages", "frameworks", "databases", "cloud", "devops", "ml", "methodologies"} {
		for _, keyword := range vocab.SkillCategories[category] {
			if containsSkill(lower, keyword) {
				add(keyword)
			}
		}
	}
	for _, pattern := range vocab.SkillPatterns {
		for _, match := range pattern.FindAllStringSubmatch(lower, -1) {
			if len(match) > 1 {
				add(match[1])
			}
		}
	}
	return skills
}

// containsSkill is a substring match with a word-boundary guard for short
// keywords, so "r" does not match every word and "go" does not match "google".
func containsSkill(lower, keyword string) bool {
	if len(keyword) > 2 {
		return strings.Contains(lower, keyword)
	}
	for _, w := range strings.Fields(lower) {
		if strings.Trim(w, ",.;:()[]") == keyword {
			return true
		}
	}
	return false
}

// DetectLevel classifies the resume as entry, mid, or senior. Any senior
// indicator wins outright; otherwise a handful of experience verbs promote
// the resume to mid.
func DetectLevel(text string) string {
	lower := strings.ToLower(text)
	for _, indicator := range vocab.ResumeSeniorIndicators {
		if strings.Contains(lower, indicator) {
			return vocab.LevelSenior
		}
	}
	hits := 0
	for _, indicator := range vocab.ResumeExperienceIndicators {
		if strings.Contains(lower, indicator) {
			hits++
		}
	}
	if hits >= 2 {
		return vocab.LevelMid
	}
	return vocab.LevelEntry
}

// ExtractContact pulls the candidate's name and email. The name heuristic is
// the first short non-empty line that contains no digits or @, which is how
// nearly every resume opens.
func ExtractContact(text string) (name, email string) {
	email = emailPattern.FindString(text)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > 60 || strings.ContainsAny(line, "@0123456789") {
			break
		}
		words := strings.Fields(line)
		if len(words) >= 2 && len(words) <= 4 {
			name = line
		}
		break
	}
	return name, email
}
