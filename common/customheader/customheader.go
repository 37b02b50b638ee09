package customheader

import (
	"strings"

	stringsutil "github.com/projectdiscovery/utils/strings"
)

const headerParts = 2

// CustomHeaders valid for all requests
type CustomHeaders []string

// String returns just a label
func (c *CustomHeaders) String() string {
	return "Custom Global Headers"
}

// Set a new global header
func (c *CustomHeaders) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// Has checks if the list contains a header name
func (c *CustomHeaders) Has(header string) bool {
	for _, customHeader := range *c {
		if stringsutil.HasPrefixAny(strings.ToLower(customHeader), strings.ToLower(header)) {
			return true
		}
	}

	return false
}

// Map returns the "Name: value" entries as a header map, skipping malformed ones
func (c *CustomHeaders) Map() map[string]string {
	headers := make(map[string]string)
	for _, customHeader := range *c {
		tokens := strings.SplitN(customHeader, ":", headerParts)
		if len(tokens) < headerParts {
			continue
		}
		headers[strings.TrimSpace(tokens[0])] = strings.TrimSpace(tokens[1])
	}
	return headers
}
