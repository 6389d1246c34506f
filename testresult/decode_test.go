package testresult

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioArtifact = `{
	"unique": 2,
	"passed": 1,
	"failed": 1,
	"totalRun": 2,
	"currentIteration": 2,
	"results": [
		{"name": "movement:walk", "iteration": 0, "result": "passed"},
		{"name": "movement:walk", "iteration": 1, "result": "failed"},
		{"name": "combat:hit", "iteration": 0, "result": "passed"}
	]
}`

func Test_GivenCompleteArtifact_WhenDecoding_ThenReturnsTestRun(t *testing.T) {
	// When
	run, err := Decode([]byte(scenarioArtifact))

	// Then
	require.NoError(t, err)
	assert.Equal(t, 2, run.Unique)
	assert.Equal(t, 1, run.Passed)
	assert.Equal(t, 1, run.Failed)
	assert.Equal(t, 2, run.TotalRun)
	assert.Equal(t, 2, run.CurrentIteration)
	require.Len(t, run.Results, 3)
	assert.Equal(t, Result{Name: "movement:walk", Iteration: 1, Result: StatusFailed}, run.Results[1])
}

func Test_GivenServerSpelling_WhenDecoding_ThenReadsCurrentIteration(t *testing.T) {
	// Given
	payload := `{"unique": 0, "passed": 0, "failed": 0, "totalRun": 0, "current_iteration": 3, "results": []}`

	// When
	run, err := Decode([]byte(payload))

	// Then
	require.NoError(t, err)
	assert.Equal(t, 3, run.CurrentIteration)
	assert.Empty(t, run.Results)
}

func Test_GivenIncompleteArtifact_WhenDecoding_ThenFailsWithDecodeError(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "missing results",
			payload: `{"unique": 1, "passed": 1, "failed": 0, "totalRun": 1, "currentIteration": 1}`,
		},
		{
			name:    "missing iteration counter",
			payload: `{"unique": 1, "passed": 1, "failed": 0, "totalRun": 1, "results": []}`,
		},
		{
			name:    "missing totalRun",
			payload: `{"unique": 1, "passed": 1, "failed": 0, "currentIteration": 1, "results": []}`,
		},
		{
			name:    "unknown result status",
			payload: `{"unique": 1, "passed": 1, "failed": 0, "totalRun": 1, "currentIteration": 1, "results": [{"name": "a:b", "iteration": 0, "result": "skipped"}]}`,
		},
		{
			name:    "result without name",
			payload: `{"unique": 1, "passed": 1, "failed": 0, "totalRun": 1, "currentIteration": 1, "results": [{"iteration": 0, "result": "passed"}]}`,
		},
		{
			name:    "not an object",
			payload: `[1, 2, 3]`,
		},
		{
			name:    "not json",
			payload: `unique: 1`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// When
			_, err := Decode([]byte(test.payload))

			// Then
			var decodeErr *DecodeError
			require.Error(t, err)
			assert.True(t, errors.As(err, &decodeErr))
		})
	}
}

func Test_GivenUnknownFields_WhenDecoding_ThenIgnoresThem(t *testing.T) {
	// Given
	payload := `{"unique": 1, "passed": 1, "failed": 0, "totalRun": 1, "currentIteration": 1, "build": "1.21",
		"results": [{"name": "a:b", "iteration": 0, "result": "passed", "tags": ["x"]}]}`

	// When
	run, err := Decode([]byte(payload))

	// Then
	require.NoError(t, err)
	require.Len(t, run.Results, 1)
	assert.Equal(t, "a:b", run.Results[0].Name)
}

func Test_GivenInconsistentCounters_WhenDecoding_ThenKeepsThemAsReported(t *testing.T) {
	// Given
	payload := `{"unique": 1, "passed": 5, "failed": 5, "totalRun": 1, "currentIteration": 1, "results": []}`

	// When
	run, err := Decode([]byte(payload))

	// Then
	require.NoError(t, err)
	assert.Equal(t, 5, run.Passed)
	assert.Equal(t, 5, run.Failed)
	assert.Equal(t, 1, run.TotalRun)
}

func Test_GivenTimestampsAndErrors_WhenDecoding_ThenParsesThem(t *testing.T) {
	// Given
	payload := `{"unique": 1, "passed": 0, "failed": 1, "totalRun": 1, "currentIteration": 1, "results": [
		{"name": "a:b", "iteration": 0, "result": "failed", "startTime": 1700000000000, "endTime": "2023-11-14T22:13:21.5Z", "error": "boom"}
	]}`

	// When
	run, err := Decode([]byte(payload))

	// Then
	require.NoError(t, err)
	result := run.Results[0]
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), result.StartTime.Time)
	assert.Equal(t, 1500*time.Millisecond, result.Duration())
	assert.Equal(t, "boom", result.ErrorMessage())
}

func Test_GivenZonelessTimestamps_WhenDecoding_ThenReadsThemAsUTC(t *testing.T) {
	// Given
	payload := `{"unique": 1, "passed": 1, "failed": 0, "totalRun": 1, "currentIteration": 1, "results": [
		{"name": "a:b", "iteration": 0, "result": "passed", "startTime": "2024-01-01T10:00:00", "endTime": "2024-01-01T10:00:02.250"}
	]}`

	// When
	run, err := Decode([]byte(payload))

	// Then
	require.NoError(t, err)
	result := run.Results[0]
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), result.StartTime.Time)
	assert.Equal(t, 2250*time.Millisecond, result.Duration())
}

func Test_GivenUnreadableTimestamp_WhenDecoding_ThenLeavesItZero(t *testing.T) {
	// Given
	payload := `{"unique": 1, "passed": 1, "failed": 0, "totalRun": 1, "currentIteration": 1, "results": [
		{"name": "a:b", "iteration": 0, "result": "passed", "startTime": "yesterday", "endTime": "2024-01-01T10:00:00Z"}
	]}`

	// When
	run, err := Decode([]byte(payload))

	// Then
	require.NoError(t, err)
	assert.True(t, run.Results[0].StartTime.IsZero())
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), run.Results[0].EndTime.Time)
}

func Test_GivenDecodedResults_WhenReencoding_ThenFieldsSurvive(t *testing.T) {
	// Given
	payload := `{"unique": 2, "passed": 1, "failed": 1, "totalRun": 2, "currentIteration": 2, "results": [
		{"name": "a:b", "iteration": 0, "result": "passed", "startTime": "2023-11-14T22:13:20Z", "endTime": "2023-11-14T22:13:21Z"},
		{"name": "a:b", "iteration": 1, "result": "failed", "startTime": 1700000000000, "error": "boom"}
	]}`
	run, err := Decode([]byte(payload))
	require.NoError(t, err)

	// When
	encoded, err := json.Marshal(run)
	require.NoError(t, err)
	decodedAgain, err := Decode(encoded)

	// Then
	require.NoError(t, err)
	assert.Equal(t, run, decodedAgain)
}

func Test_GivenNames_WhenSplittingGroupKey_ThenSplitsOnFirstColon(t *testing.T) {
	tests := []struct {
		name   string
		group  string
		testID string
	}{
		{name: "movement:walk", group: "movement", testID: "walk"},
		{name: "standalone", group: "standalone", testID: ""},
		{name: "a:b:c", group: "a", testID: "b:c"},
		{name: "", group: "", testID: ""},
		{name: ":orphan", group: "", testID: "orphan"},
	}

	for _, test := range tests {
		group, testID := GroupKey(test.name)
		assert.Equal(t, test.group, group, test.name)
		assert.Equal(t, test.testID, testID, test.name)
	}
}
