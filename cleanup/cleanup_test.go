package cleanup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-bedrock-gametest/cleanup/mocks"
	"github.com/bitrise-steplib/steps-bedrock-gametest/provision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenPreviousRun_WhenRemovingStaleArtifacts_ThenDeletesResultsAndContentLogs(t *testing.T) {
	// Given
	serverDir := t.TempDir()
	resultsPath := provision.ResultsPath(serverDir)
	require.NoError(t, os.MkdirAll(filepath.Dir(resultsPath), 0755))
	require.NoError(t, os.WriteFile(resultsPath, []byte("{}"), 0644))
	contentLog := filepath.Join(serverDir, "ContentLog__Mon_Jan_01.txt")
	require.NoError(t, os.WriteFile(contentLog, []byte("[Scripting] error"), 0644))
	unrelated := filepath.Join(serverDir, "server.properties")
	require.NoError(t, os.WriteFile(unrelated, []byte("level-name=x"), 0644))

	cleaner := NewCleaner(NewFileRemover(), log.NewLogger())

	// When
	err := cleaner.RemoveStaleArtifacts(serverDir)

	// Then
	require.NoError(t, err)
	assert.NoFileExists(t, resultsPath)
	assert.NoFileExists(t, contentLog)
	assert.FileExists(t, unrelated)
}

func Test_GivenCleanServerDir_WhenRemovingStaleArtifacts_ThenSucceeds(t *testing.T) {
	// Given
	cleaner := NewCleaner(NewFileRemover(), log.NewLogger())

	// When
	err := cleaner.RemoveStaleArtifacts(t.TempDir())

	// Then
	assert.NoError(t, err)
}

func Test_GivenRemoveFails_WhenRemovingStaleArtifacts_ThenReturnsError(t *testing.T) {
	// Given
	serverDir := t.TempDir()
	remover := mocks.NewFileRemover(t)
	remover.On("RemoveAll", provision.ResultsPath(serverDir)).Return(errors.New("read-only file system"))

	cleaner := NewCleaner(remover, log.NewLogger())

	// When
	err := cleaner.RemoveStaleArtifacts(serverDir)

	// Then
	assert.ErrorContains(t, err, "read-only file system")
}
