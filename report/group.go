package report

import (
	"sort"

	"github.com/bitrise-steplib/steps-bedrock-gametest/testresult"
)

// legacyDisplayName is the placeholder the legacy report printed instead of the test name.
const legacyDisplayName = "testingfoo"

// Member pairs a result with the group key and test id taken from its original name.
type Member struct {
	Key    string
	TestID string
	Result testresult.Result
}

// Group ...
type Group struct {
	Key     string
	Members []Member
}

// SortResults returns a copy of results ordered by name (byte-wise) and then by iteration.
func SortResults(results []testresult.Result) []testresult.Result {
	sorted := make([]testresult.Result, len(results))
	copy(sorted, results)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].Iteration < sorted[j].Iteration
	})

	return sorted
}

// GroupResults sorts results globally and buckets them by group key.
// Groups are returned in the order they are first seen in the sorted sequence.
func GroupResults(results []testresult.Result) []Group {
	var groups []Group
	indexByKey := map[string]int{}

	for _, result := range SortResults(results) {
		key, testID := testresult.GroupKey(result.Name)

		idx, ok := indexByKey[key]
		if !ok {
			idx = len(groups)
			indexByKey[key] = idx
			groups = append(groups, Group{Key: key})
		}

		groups[idx].Members = append(groups[idx].Members, Member{
			Key:    key,
			TestID: testID,
			Result: result,
		})
	}

	return groups
}

// DisplayName is the name shown in the test column of the report.
func DisplayName(member Member, legacy bool) string {
	if legacy {
		return legacyDisplayName
	}
	return member.Result.Name
}
