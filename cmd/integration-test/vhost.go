package main

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/projectdiscovery/hostcollide/internal/testutils"
)

var vhostTestcases = map[string]testutils.TestCase{
	"Host header carries the domain": &vhostBasic{},
	"Every pair is attempted twice":  &vhostMultipleTargets{},
	"Refused connection is recorded": &vhostRefused{},
	"Custom header is sent":          &vhostCustomHeader{},
}

func hostEchoServer() *httptest.Server {
	router := httprouter.New()
	router.GET("/", httprouter.Handle(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		// Return the Host header as title so the csv shows what was sent
		fmt.Fprintf(w, "<html><title>%s</title></html>", r.Host)
	}))
	return httptest.NewServer(router)
}

func serverAddress(ts *httptest.Server) string {
	return strings.TrimPrefix(ts.URL, "http://")
}

type vhostBasic struct{}

func (v *vhostBasic) Execute() error {
	ts := hostEchoServer()
	defer ts.Close()

	lists, err := testutils.NewLists([]string{"test.example.com"}, []string{serverAddress(ts)})
	if err != nil {
		return err
	}
	defer lists.Cleanup()

	results, err := testutils.RunHostcollideAndGetResults(binary, lists, debug)
	if err != nil {
		return err
	}
	if len(results) != 1 {
		return errIncorrectResultsCount(results)
	}
	expected := fmt.Sprintf("%s\ttest.example.com -- http://test.example.com status:200", serverAddress(ts))
	if !strings.HasPrefix(results[0], expected) {
		return errIncorrectResult(expected, results[0])
	}

	rows, err := lists.Rows()
	if err != nil {
		return err
	}
	if len(rows) != 2 {
		return fmt.Errorf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][5] != "test.example.com" {
		return errIncorrectResult("test.example.com", rows[0][5])
	}
	if rows[1][3] != "ERROR" {
		return errIncorrectResult("ERROR", rows[1][3])
	}
	return nil
}

type vhostMultipleTargets struct{}

func (v *vhostMultipleTargets) Execute() error {
	ts := hostEchoServer()
	defer ts.Close()

	domains := []string{"test1.example.com", "test2.example.com", "test3.example.com"}
	lists, err := testutils.NewLists(domains, []string{serverAddress(ts), serverAddress(ts)})
	if err != nil {
		return err
	}
	defer lists.Cleanup()

	results, err := testutils.RunHostcollideAndGetResults(binary, lists, debug, "-threads", "50")
	if err != nil {
		return err
	}
	if len(results) != len(domains)*2 {
		return errIncorrectResultsCount(results)
	}
	rows, err := lists.Rows()
	if err != nil {
		return err
	}
	if len(rows) != 2*len(domains)*2 {
		return fmt.Errorf("expected %d rows, got %d", 2*len(domains)*2, len(rows))
	}
	return nil
}

type vhostRefused struct{}

func (v *vhostRefused) Execute() error {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	address := listener.Addr().String()
	listener.Close()

	lists, err := testutils.NewLists([]string{"test.example.com"}, []string{address})
	if err != nil {
		return err
	}
	defer lists.Cleanup()

	results, err := testutils.RunHostcollideAndGetResults(binary, lists, debug)
	if err != nil {
		return err
	}
	if len(results) != 0 {
		return errIncorrectResultsCount(results)
	}
	rows, err := lists.Rows()
	if err != nil {
		return err
	}
	if len(rows) != 2 {
		return fmt.Errorf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row[3] != "ERROR" || row[4] != "0" {
			return fmt.Errorf("unexpected row for refused connection: %v", row)
		}
	}
	return nil
}

type vhostCustomHeader struct{}

func (v *vhostCustomHeader) Execute() error {
	router := httprouter.New()
	router.GET("/", httprouter.Handle(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		fmt.Fprintf(w, "<title>%s</title>", r.Header.Get("X-Scan"))
	}))
	ts := httptest.NewServer(router)
	defer ts.Close()

	lists, err := testutils.NewLists([]string{"test.example.com"}, []string{serverAddress(ts)})
	if err != nil {
		return err
	}
	defer lists.Cleanup()

	if _, err := testutils.RunHostcollideAndGetResults(binary, lists, debug, "-H", "X-Scan: collide"); err != nil {
		return err
	}
	rows, err := lists.Rows()
	if err != nil {
		return err
	}
	if len(rows) == 0 || rows[0][5] != "collide" {
		return fmt.Errorf("custom header was not sent: %v", rows)
	}
	return nil
}
