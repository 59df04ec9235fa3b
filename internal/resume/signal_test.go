package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Liam-Hayes8/Job-Matcher/internal/vocab"
)

const sweResume = `Jordan Rivera
jordan.rivera@example.com | 555-0100

Software engineer with experience building backend services in Go and Python.
Worked with PostgreSQL, Redis, and Kubernetes. Built CI/CD pipelines using
GitHub Actions and deployed to AWS. Proficient in Docker.
`

const financeResume = `Sam Okafor
sam.okafor@example.com

Financial analyst focused on portfolio valuation and equity research.
Developed FP&A models in Excel and Bloomberg, managed real estate
acquisition underwriting.
`

func TestExtractTokens(t *testing.T) {
	signal := Extract(sweResume)

	assert.True(t, signal.Tokens["software"])
	assert.True(t, signal.Tokens["backend"])
	assert.True(t, signal.Tokens["kubernetes"])
	assert.False(t, signal.Tokens["jordan"], "candidate name must not become a token")
	assert.False(t, signal.Tokens["jordan.rivera@example.com"])
}

func TestExtractTokensMultiWordPhrases(t *testing.T) {
	tokens := Tokens("Full stack developer with real estate domain work")
	assert.True(t, tokens["full stack"])
	assert.True(t, tokens["real estate"])
}

func TestExtractSkills(t *testing.T) {
	skills := ExtractSkills(sweResume)

	assert.Contains(t, skills, "python")
	assert.Contains(t, skills, "go")
	assert.Contains(t, skills, "postgresql")
	assert.Contains(t, skills, "redis")
	assert.Contains(t, skills, "kubernetes")
	assert.Contains(t, skills, "docker")
	assert.Contains(t, skills, "aws")
	assert.Contains(t, skills, "github actions")
	assert.Contains(t, skills, "ci/cd")
}

func TestExtractSkillsShortKeywordBoundary(t *testing.T) {
	skills := ExtractSkills("I searched google for recipes")
	assert.NotContains(t, skills, "go")
	assert.NotContains(t, skills, "r")
}

func TestExtractSkillsNoDuplicates(t *testing.T) {
	skills := ExtractSkills("python python python, proficient in python")
	count := 0
	for _, s := range skills {
		if s == "python" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDetectLevel(t *testing.T) {
	assert.Equal(t, vocab.LevelSenior, DetectLevel("Senior engineer who built many systems"))
	assert.Equal(t, vocab.LevelSenior, DetectLevel("Engineering manager"))
	assert.Equal(t, vocab.LevelMid, DetectLevel("I worked on services and built pipelines"))
	assert.Equal(t, vocab.LevelEntry, DetectLevel("Recent computer science graduate"))
}

func TestExtractContact(t *testing.T) {
	name, email := ExtractContact(sweResume)
	assert.Equal(t, "Jordan Rivera", name)
	assert.Equal(t, "jordan.rivera@example.com", email)

	name, email = ExtractContact("A very long headline sentence that is clearly not a person name at all, truly")
	assert.Empty(t, name)
	assert.Empty(t, email)
}

func TestExtractFinanceResume(t *testing.T) {
	signal := Extract(financeResume)

	require.NotNil(t, signal)
	assert.True(t, signal.Tokens["portfolio"])
	assert.True(t, signal.Tokens["valuation"])
	assert.True(t, signal.Tokens["real estate"])
	assert.True(t, signal.Tokens["fp&a"])
	assert.False(t, signal.Empty())
}

func TestExtractEmptyResume(t *testing.T) {
	signal := Extract("")
	assert.True(t, signal.Empty())
}
