package provision

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-bedrock-gametest/packs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenSettings_WhenProvisioning_ThenWritesServerFiles(t *testing.T) {
	// Given
	serverDir := t.TempDir()
	debugPack := packs.Structured{PackID: "1a2b3c4d-0000-4000-8000-000000000001", Version: packs.Version{0, 0, 1}}
	settings := Settings{
		ServerDir:          serverDir,
		RepeatCount:        2,
		RepeatFailuresOnly: true,
		MaxTestsPerBatch:   20,
		TimeoutTicks:       1200,
		TestRunID:          "run-1",
		Tags:               []string{"movement", "combat"},
		DebugPack:          debugPack,
		Packs: packs.Merge(
			[]packs.Entry{debugPack},
			[]packs.Entry{packs.Structured{PackID: "user-pack", Version: packs.Version{1, 0, 0}}, packs.Opaque{Raw: "garbage"}},
		),
	}

	provisioner := NewProvisioner(fileutil.NewFileManager(), log.NewLogger())

	// When
	skipped, err := provisioner.Provision(settings)

	// Then
	require.NoError(t, err)
	assert.Equal(t, []packs.Opaque{{Raw: "garbage"}}, skipped)

	assert.JSONEq(t, `{
		"automation_repeat_count": 2,
		"automation_repeat_failures_only": true,
		"max_tests_per_batch": 20,
		"timeout_ticks": 1200,
		"automation_testrun_id": "run-1",
		"automation_gametest_tags": ["debug", "movement", "combat"]
	}`, readFile(t, filepath.Join(serverDir, TestConfigFile)))

	assert.JSONEq(t, `[
		{"pack_id": "1a2b3c4d-0000-4000-8000-000000000001", "version": [0, 0, 1]},
		{"pack_id": "user-pack", "version": [1, 0, 0]}
	]`, readFile(t, filepath.Join(serverDir, WorldsDir, WorldName, WorldBehaviorPacksFile)))

	assert.JSONEq(t, `{"allowed_modules": ["*"]}`, readFile(t, filepath.Join(serverDir, "config", "default", "permissions.json")))

	properties := readFile(t, filepath.Join(serverDir, ServerPropertiesFile))
	assert.Contains(t, properties, "level-name=Bedrock level\n")
	assert.Contains(t, properties, "content-log-file-enabled=true\n")

	assert.DirExists(t, filepath.Join(serverDir, WorldsDir, WorldName, "scripts"))
	assert.NoFileExists(t, filepath.Join(serverDir, WorldsDir, WorldName, LevelDatFile))
}

func Test_GivenDebugPack_WhenProvisioning_ThenManifestReferencesPackUUID(t *testing.T) {
	// Given
	serverDir := t.TempDir()
	debugPack := packs.NewDebugPack()
	provisioner := NewProvisioner(fileutil.NewFileManager(), log.NewLogger())

	// When
	_, err := provisioner.Provision(Settings{ServerDir: serverDir, DebugPack: debugPack, Packs: []packs.Entry{debugPack}})

	// Then
	require.NoError(t, err)

	var manifest packManifest
	require.NoError(t, json.Unmarshal([]byte(readFile(t, filepath.Join(DebugPackPath(serverDir), "manifest.json"))), &manifest))
	assert.Equal(t, debugPack.PackID, manifest.Header.UUID)
	assert.Equal(t, debugPack.Version, manifest.Header.Version)
	require.Len(t, manifest.Modules, 1)
	assert.NotEqual(t, debugPack.PackID, manifest.Modules[0].UUID)

	script := readFile(t, filepath.Join(DebugPackPath(serverDir), debugPackScript))
	assert.True(t, strings.Contains(script, `.tag("debug")`))
}

func Test_GivenLevelDatTemplate_WhenProvisioning_ThenCopiesItIntoTheWorld(t *testing.T) {
	// Given
	serverDir := t.TempDir()
	template := filepath.Join(t.TempDir(), "level.dat")
	require.NoError(t, os.WriteFile(template, []byte{0x0a, 0x00, 0x01, 0xff}, 0644))

	provisioner := NewProvisioner(fileutil.NewFileManager(), log.NewLogger())

	// When
	_, err := provisioner.Provision(Settings{ServerDir: serverDir, LevelDatTemplate: template})

	// Then
	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(WorldPath(serverDir), LevelDatFile))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x00, 0x01, 0xff}, content)
}

func Test_GivenMissingLevelDatTemplate_WhenProvisioning_ThenFails(t *testing.T) {
	// Given
	provisioner := NewProvisioner(fileutil.NewFileManager(), log.NewLogger())

	// When
	_, err := provisioner.Provision(Settings{ServerDir: t.TempDir(), LevelDatTemplate: "/does/not/exist/level.dat"})

	// Then
	assert.Error(t, err)
}

func Test_GivenServerDir_WhenAskingForResultsPath_ThenPointsIntoLogsDir(t *testing.T) {
	assert.Equal(t, filepath.Join("bds", "logs", "test-results-gametest.json"), ResultsPath("bds"))
}

func readFile(t *testing.T, pth string) string {
	content, err := os.ReadFile(pth)
	require.NoError(t, err)
	return string(content)
}
