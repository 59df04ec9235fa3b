// Package vocab holds the fixed vocabularies used by resume signal extraction
// and relevance scoring. All scoring strategies consume these lists; they are
// defined once here so the token heuristic, skill extraction, and level
// classification can never drift apart.
package vocab

import "regexp"

// FinanceTokens is the finance-domain resume token vocabulary.
var FinanceTokens = []string{
	"finance", "financial", "analyst", "asset", "wealth", "equity", "portfolio",
	"investment", "trading", "fp&a", "valuation", "real estate", "acquisition",
	"underwriting", "accounting", "bloomberg", "quickbooks", "oracle",
}

// SoftwareTokens is the software-domain resume token vocabulary.
var SoftwareTokens = []string{
	"software", "engineer", "developer", "backend", "frontend", "full stack",
	"python", "java", "react", "kubernetes", "docker",
}

// InternshipMarkers are title substrings that classify a posting as intern-level.
var InternshipMarkers = []string{"intern", "co-op", "summer", "new grad"}

// SkillCategories maps a category name to its keyword list. Matching is
// case-insensitive substring search against job and resume text.
var SkillCategories = map[string][]string{
	"languages": {
		"python", "javascript", "typescript", "java", "c++", "c#", "go", "rust", "php", "ruby",
		"swift", "kotlin", "scala", "r", "matlab", "sql", "html", "css", "bash", "powershell",
	},
	"frameworks": {
		"react", "angular", "vue", "node.js", "express", "django", "flask", "spring", "laravel",
		"rails", "asp.net", "fastapi", "gin", "echo", "fiber", "actix", "rocket", "axum",
	},
	"databases": {
		"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "cassandra", "dynamodb",
		"firebase", "supabase", "cockroachdb", "timescaledb", "influxdb", "neo4j",
	},
	"cloud": {
		"aws", "gcp", "azure", "digitalocean", "heroku", "vercel", "netlify", "cloudflare",
	},
	"devops": {
		"docker", "kubernetes", "terraform", "ansible", "jenkins", "gitlab", "github actions",
		"circleci", "argo cd", "helm", "prometheus", "grafana",
	},
	"ml": {
		"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy", "matplotlib",
		"jupyter", "hugging face", "openai", "vertex ai", "sagemaker", "mlflow",
	},
	"methodologies": {
		"agile", "scrum", "kanban", "devops", "ci/cd", "tdd", "bdd", "code review",
	},
}

// SkillPatterns match skills expressed as phrases rather than bare keywords,
// e.g. "proficient in Go" or "Python developer". The first capture group is
// the skill.
var SkillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:proficient in|experience with|skilled in)\s+([a-zA-Z+#.]+)`),
	regexp.MustCompile(`([a-zA-Z+#.]+)\s+(?:developer|programming|development)`),
	regexp.MustCompile(`(?:worked with|used)\s+([a-zA-Z+#.]+)`),
}

// Experience levels, from most junior to most senior.
const (
	LevelEntry  = "entry"
	LevelMid    = "mid"
	LevelSenior = "senior"
)

// JobLevelKeywords classify a job description; checked in order, first match
// wins, so the order is part of the contract.
var JobLevelKeywords = []struct {
	Keyword string
	Level   string
}{
	{"principal", LevelSenior},
	{"staff", LevelSenior},
	{"senior", LevelSenior},
	{"lead", LevelSenior},
	{"mid level", LevelMid},
	{"mid-level", LevelMid},
	{"intermediate", LevelMid},
	{"junior", LevelEntry},
	{"entry level", LevelEntry},
	{"entry-level", LevelEntry},
	{"new grad", LevelEntry},
	{"intern", LevelEntry},
}

// ResumeSeniorIndicators promote a resume to senior when present.
var ResumeSeniorIndicators = []string{
	"senior", "lead", "principal", "architect", "manager", "director",
}

// ResumeExperienceIndicators count toward mid-level when several are present.
var ResumeExperienceIndicators = []string{
	"years of experience", "experience", "worked", "developed", "managed",
	"built", "designed", "shipped",
}
