package testaddon

import (
	"fmt"
	"path/filepath"
)

// Exporter ...
type Exporter interface {
	CopyAndSaveMetadata(info AddonCopy) error
	WriteJUnit(outputDir string, testReport TestReport) (string, error)
}

type exporter struct {
	testAddon  TestAddon
	fileWriter FileWriter
}

// NewExporter ...
func NewExporter(testAddon TestAddon, fileWriter FileWriter) Exporter {
	return &exporter{
		testAddon:  testAddon,
		fileWriter: fileWriter,
	}
}

// AddonCopy ...
type AddonCopy struct {
	SourceTestOutputDir   string
	TargetAddonPath       string
	TargetAddonBundleName string
}

func (e exporter) CopyAndSaveMetadata(info AddonCopy) error {
	info.TargetAddonBundleName = e.testAddon.ReplaceUnsupportedFilenameCharacters(info.TargetAddonBundleName)
	addonPerStepOutputDir := filepath.Join(info.TargetAddonPath, info.TargetAddonBundleName)

	if err := e.testAddon.CopyDirectory(info.SourceTestOutputDir, addonPerStepOutputDir); err != nil {
		return err
	}
	if err := e.testAddon.SaveBundleMetadata(addonPerStepOutputDir, info.TargetAddonBundleName); err != nil {
		return err
	}
	return nil
}

// WriteJUnit writes the encoded report into outputDir and returns its path.
func (e exporter) WriteJUnit(outputDir string, testReport TestReport) (string, error) {
	data, err := testReport.Encode()
	if err != nil {
		return "", err
	}

	pth := filepath.Join(outputDir, JUnitFileName)
	if err := e.fileWriter.Write(pth, string(data), 0644); err != nil {
		return "", fmt.Errorf("failed to write JUnit report (%s): %w", pth, err)
	}

	return pth, nil
}
