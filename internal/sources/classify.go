package sources

import (
	"strings"

	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

// Keyword classifiers for vendors that supply no structured field. Priority
// order is fixed: the first matching bucket wins.

var jobTypeKeywords = []struct {
	Words []string
	Type  types.JobType
}{
	{[]string{"intern", "internship"}, types.JobTypeInternship},
	{[]string{"contract", "freelance"}, types.JobTypeContract},
	{[]string{"part-time", "parttime", "part time"}, types.JobTypePartTime},
}

var remoteKeywords = []struct {
	Words  []string
	Status types.RemoteStatus
}{
	{[]string{"remote", "work from home", "wfh"}, types.RemoteYes},
	{[]string{"hybrid", "flexible"}, types.RemoteHybrid},
}

// ClassifyJobType derives the employment type from a job title.
func ClassifyJobType(title string) types.JobType {
	lower := strings.ToLower(title)
	for _, bucket := range jobTypeKeywords {
		for _, w := range bucket.Words {
			if strings.Contains(lower, w) {
				return bucket.Type
			}
		}
	}
	return types.JobTypeFullTime
}

// ClassifyRemote derives the work arrangement from title+description text.
func ClassifyRemote(text string) types.RemoteStatus {
	lower := strings.ToLower(text)
	for _, bucket := range remoteKeywords {
		for _, w := range bucket.Words {
			if strings.Contains(lower, w) {
				return bucket.Status
			}
		}
	}
	return types.RemoteNo
}
