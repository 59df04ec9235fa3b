package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

func TestClassifyJobType(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  types.JobType
	}{
		{"internship beats contract", "Software Engineering Intern (Contract)", types.JobTypeInternship},
		{"co-op counts as internship", "Data Science Co-op", types.JobTypeInternship},
		{"contract beats part time", "Contract Backend Engineer, Part-Time", types.JobTypeContract},
		{"freelance is contract", "Freelance iOS Developer", types.JobTypeContract},
		{"part time", "Part-time QA Analyst", types.JobTypePartTime},
		{"default full time", "Senior Software Engineer", types.JobTypeFullTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyJobType(tt.title))
		})
	}
}

func TestClassifyRemote(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.RemoteStatus
	}{
		{"remote beats hybrid", "Remote-first team with hybrid option", types.RemoteYes},
		{"wfh is remote", "WFH friendly engineering role", types.RemoteYes},
		{"hybrid", "Hybrid schedule, 3 days in office", types.RemoteHybrid},
		{"flexible is hybrid", "Flexible work arrangement", types.RemoteHybrid},
		{"default onsite", "On site in our New York office", types.RemoteNo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRemote(tt.text))
		})
	}
}
