package httpx

import (
	"net/http"
	"strings"

	"github.com/projectdiscovery/hostcollide/common/stringz"
)

// TitlePlaceholder is recorded when no title could be extracted
const TitlePlaceholder = "title extraction failed"

const (
	titleOpen  = "<title>"
	titleClose = "</title>"

	titleScanWindow = 1000
	maxTitleLength  = 50
)

// ExtractTitle returns the text enclosed by the first <title>...</title>
// pair found in the first 1000 characters of body, cut to 50 characters.
// ok is false when the markers are missing from the window.
func ExtractTitle(body string) (title string, ok bool) {
	window := stringz.Truncate(body, titleScanWindow)
	start := strings.Index(window, titleOpen)
	if start < 0 {
		return "", false
	}
	rest := window[start+len(titleOpen):]
	end := strings.Index(rest, titleClose)
	if end < 0 {
		return "", false
	}
	return stringz.Truncate(rest[:end], maxTitleLength), true
}

// TitleOrPlaceholder extracts the title of a 200 response, returning the
// placeholder for any other status or when extraction fails
func TitleOrPlaceholder(r *Response) string {
	if r.StatusCode != http.StatusOK {
		return TitlePlaceholder
	}
	if title, ok := ExtractTitle(r.Text()); ok {
		return title
	}
	return TitlePlaceholder
}
