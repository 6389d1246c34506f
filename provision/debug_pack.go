package provision

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/bitrise-steplib/steps-bedrock-gametest/packs"
	"github.com/google/uuid"
)

const (
	developmentBehaviorPacksDir = "development_behavior_packs"
	debugPackDirName            = "gametest_debug"
	debugPackScript             = "scripts/main.js"
)

const debugPackScriptContent = `import * as GameTest from "@minecraft/server-gametest";

GameTest.register("debug", "heartbeat", (test) => {
  test.succeed();
})
  .maxTicks(20)
  .tag("` + DebugTestTag + `");
`

type packHeader struct {
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	UUID             string        `json:"uuid"`
	Version          packs.Version `json:"version"`
	MinEngineVersion packs.Version `json:"min_engine_version"`
}

type packModule struct {
	Type     string        `json:"type"`
	Language string        `json:"language,omitempty"`
	UUID     string        `json:"uuid"`
	Version  packs.Version `json:"version"`
	Entry    string        `json:"entry,omitempty"`
}

type packDependency struct {
	ModuleName string `json:"module_name"`
	Version    string `json:"version"`
}

type packManifest struct {
	FormatVersion int              `json:"format_version"`
	Header        packHeader       `json:"header"`
	Modules       []packModule     `json:"modules"`
	Dependencies  []packDependency `json:"dependencies"`
}

// DebugPackPath ...
func DebugPackPath(serverDir string) string {
	return filepath.Join(serverDir, developmentBehaviorPacksDir, debugPackDirName)
}

func writeDebugPack(fileManager FileManager, serverDir string, pack packs.Structured) error {
	packDir := DebugPackPath(serverDir)

	manifest := packManifest{
		FormatVersion: 2,
		Header: packHeader{
			Name:             "GameTest debug pack",
			Description:      "Heartbeat test, proves the GameTest framework is loaded",
			UUID:             pack.PackID,
			Version:          pack.Version,
			MinEngineVersion: packs.Version{1, 20, 0},
		},
		Modules: []packModule{
			{
				Type:     "script",
				Language: "javascript",
				UUID:     uuid.NewString(),
				Version:  pack.Version,
				Entry:    debugPackScript,
			},
		},
		Dependencies: []packDependency{
			{ModuleName: "@minecraft/server", Version: "1.0.0"},
			{ModuleName: "@minecraft/server-gametest", Version: "1.0.0-beta"},
		},
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode debug pack manifest: %w", err)
	}

	manifestPath := filepath.Join(packDir, "manifest.json")
	if err := fileManager.Write(manifestPath, string(data), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", manifestPath, err)
	}

	scriptPath := filepath.Join(packDir, debugPackScript)
	if err := fileManager.Write(scriptPath, debugPackScriptContent, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", scriptPath, err)
	}

	return nil
}
