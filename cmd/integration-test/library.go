package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/projectdiscovery/hostcollide/internal/testutils"
	"github.com/projectdiscovery/hostcollide/runner"
)

var libraryTestcases = map[string]testutils.TestCase{
	"Hostcollide as library": &hostcollideLibrary{},
}

type hostcollideLibrary struct {
}

func (h *hostcollideLibrary) Execute() error {
	ts := hostEchoServer()
	defer ts.Close()

	lists, err := testutils.NewLists([]string{"library.example.com"}, []string{serverAddress(ts)})
	if err != nil {
		return err
	}
	defer lists.Cleanup()

	options := runner.Options{
		DomainFile:   lists.DomainFile,
		IPFile:       lists.IPFile,
		Output:       lists.Output,
		Threads:      1,
		Timeout:      runner.DefaultTimeout,
		StatusWriter: io.Discard,
	}
	if err := options.ValidateOptions(); err != nil {
		return err
	}

	hostcollideRunner, err := runner.New(&options)
	if err != nil {
		return err
	}
	defer hostcollideRunner.Close()

	if err := hostcollideRunner.RunEnumeration(); err != nil {
		return err
	}

	successes := hostcollideRunner.Successes()
	if len(successes) != 1 {
		return errIncorrectResultsCount(successes)
	}
	expected := fmt.Sprintf("%s\tlibrary.example.com -- http://library.example.com status:200", serverAddress(ts))
	if got := successes[0]; !strings.HasPrefix(got, expected) {
		return errIncorrectResult(expected, got)
	}
	return nil
}
