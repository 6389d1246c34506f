package testaddon

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenNormalBundleName_WhenExport_ThenCreatesOutputStructure(t *testing.T) {
	runTest(t, "GameTest", "GameTest")
}

func Test_GivenBundleNameWithSpecialCharacters_WhenExport_ThenReplacesSpecialCharacters(t *testing.T) {
	runTest(t, "W/eir/d:Na::me/", "W-eir-d-Na--me-")
}

func Test_GivenJUnitReport_WhenWriting_ThenWritesXMLIntoOutputDir(t *testing.T) {
	// Given
	outputDir := t.TempDir()
	exporter := newExporter()

	// When
	pth, err := exporter.WriteJUnit(outputDir, TestReport{TestSuites: []TestSuite{{Name: "movement", Tests: 1}}})

	// Then
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, JUnitFileName), pth)

	content, err := os.ReadFile(pth)
	require.NoError(t, err)
	assert.Contains(t, string(content), `<testsuite name="movement" tests="1"`)
}

func runTest(t *testing.T, bundleName string, expectedBundleName string) {
	// Given
	resultDir, outputDir := prepareArtifacts(t)

	exporter := newExporter()

	// When
	err := exporter.CopyAndSaveMetadata(AddonCopy{
		SourceTestOutputDir:   resultDir,
		TargetAddonPath:       outputDir,
		TargetAddonBundleName: bundleName,
	})

	// Then
	assert.NoError(t, err)
	assert.True(t, isOutputStructureCorrectWithExpectedBundleName(outputDir, expectedBundleName))
}

func newExporter() Exporter {
	fileManager := fileutil.NewFileManager()
	testAddon := NewTestAddon(log.NewLogger(), command.NewFactory(env.NewRepository()), fileManager)
	return NewExporter(testAddon, fileManager)
}

func prepareArtifacts(t *testing.T) (string, string) {
	tempDir := t.TempDir()

	resultDir := filepath.Join(tempDir, "result")

	junitFile := filepath.Join(resultDir, JUnitFileName)
	err := fileutil.NewFileManager().Write(junitFile, "<testsuites/>", 0777)
	require.NoError(t, err)
	require.FileExists(t, junitFile)

	outputDir := filepath.Join(tempDir, "output")

	return resultDir, outputDir
}

func isOutputStructureCorrectWithExpectedBundleName(outputDir string, bundleName string) bool {
	jsonPath := filepath.Join(outputDir, bundleName, "test-info.json")
	expectedPaths := []string{
		filepath.Join(outputDir, bundleName),
		filepath.Join(outputDir, bundleName, "result", JUnitFileName),
		jsonPath,
	}

	for _, path := range expectedPaths {
		if !isPathExists(path) {
			return false
		}
	}

	return exportedBundleNameFromFile(jsonPath) == bundleName
}

func exportedBundleNameFromFile(path string) string {
	type testBundle struct {
		BundleName string `json:"test-name"`
	}

	jsonFile, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer jsonFile.Close()

	bytes, _ := io.ReadAll(jsonFile)

	var bundle testBundle
	_ = json.Unmarshal(bytes, &bundle)

	return bundle.BundleName
}

func isPathExists(path string) bool {
	isExist, _ := pathutil.NewPathChecker().IsPathExists(path)
	return isExist
}
