package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/projectdiscovery/hostcollide/internal/testutils"
)

var (
	debug      = os.Getenv("DEBUG") == "true"
	customTest = os.Getenv("TEST")
	suite      = os.Getenv("SUITE")
	binary     = envOrDefault("HOSTCOLLIDE_BINARY", "./hostcollide")

	errored = false
)

func main() {
	success := aurora.Green("[✓]").String()
	failed := aurora.Red("[✘]").String()

	tests := map[string]map[string]testutils.TestCase{
		"vhost":   vhostTestcases,
		"library": libraryTestcases,
	}
	for name, cases := range tests {
		if suite != "" && suite != name {
			continue
		}
		fmt.Printf("Running test cases for \"%s\"\n", aurora.Blue(name))

		for testName, test := range cases {
			if customTest != "" && !strings.Contains(testName, customTest) {
				continue // only run tests user asked
			}
			if err := test.Execute(); err != nil {
				fmt.Fprintf(os.Stderr, "%s Test \"%s\" failed: %s\n", failed, testName, err)
				errored = true
			} else {
				fmt.Printf("%s Test \"%s\" passed!\n", success, testName)
			}
		}
	}
	if errored {
		os.Exit(1)
	}
}

func envOrDefault(key, value string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return value
}

func errIncorrectResultsCount(results []string) error {
	return fmt.Errorf("incorrect number of results %s", strings.Join(results, "\n\t"))
}

func errIncorrectResult(expected, got string) error {
	return fmt.Errorf("incorrect result: expected \"%s\" got \"%s\"", expected, got)
}
