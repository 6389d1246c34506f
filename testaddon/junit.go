package testaddon

import (
	"encoding/xml"
	"fmt"

	"github.com/bitrise-steplib/steps-bedrock-gametest/report"
	"github.com/bitrise-steplib/steps-bedrock-gametest/testresult"
)

// JUnitFileName is the report file the test addon picks up.
const JUnitFileName = "gametest-results.xml"

// TestReport is the JUnit document uploaded to the test addon.
type TestReport struct {
	XMLName    xml.Name    `xml:"testsuites"`
	TestSuites []TestSuite `xml:"testsuite"`
}

// TestSuite ...
type TestSuite struct {
	XMLName   xml.Name   `xml:"testsuite"`
	Name      string     `xml:"name,attr"`
	Tests     int        `xml:"tests,attr"`
	Failures  int        `xml:"failures,attr"`
	Time      float64    `xml:"time,attr"`
	TestCases []TestCase `xml:"testcase"`
}

// TestCase ...
type TestCase struct {
	XMLName   xml.Name `xml:"testcase"`
	Name      string   `xml:"name,attr"`
	ClassName string   `xml:"classname,attr"`
	Time      float64  `xml:"time,attr"`
	Failure   *Failure `xml:"failure,omitempty"`
}

// Failure ...
type Failure struct {
	XMLName xml.Name `xml:"failure,omitempty"`
	Value   string   `xml:",chardata"`
}

// ConvertToJUnit maps every group to a suite and every (test, iteration) execution to a case.
// Repeated executions are told apart by the iteration suffix of the case name.
func ConvertToJUnit(run testresult.TestRun) TestReport {
	var testReport TestReport

	for _, group := range report.GroupResults(run.Results) {
		suite := TestSuite{Name: group.Key}

		for _, member := range group.Members {
			result := member.Result

			testCase := TestCase{
				Name:      fmt.Sprintf("%s#%d", result.Name, result.Iteration),
				ClassName: group.Key,
				Time:      result.Duration().Seconds(),
			}
			if result.Result == testresult.StatusFailed {
				testCase.Failure = &Failure{Value: result.ErrorMessage()}
				suite.Failures++
			}

			suite.Tests++
			suite.Time += testCase.Time
			suite.TestCases = append(suite.TestCases, testCase)
		}

		testReport.TestSuites = append(testReport.TestSuites, suite)
	}

	return testReport
}

// Encode ...
func (r TestReport) Encode() ([]byte, error) {
	data, err := xml.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not encode JUnit report: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}
