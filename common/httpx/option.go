package httpx

import (
	"math"
	"time"
)

// BrowserUserAgent is sent on every probe unless a random agent is requested
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Options contains configuration options for the client
type Options struct {
	// Timeout is the maximum time to wait for the whole request
	Timeout time.Duration
	// RetryMax is the maximum number of retries
	RetryMax int

	CustomHeaders    map[string]string
	DefaultUserAgent string
	RandomAgent      bool
	HTTPProxy        string

	MaxResponseBodySizeToRead int64
}

// DefaultOptions contains the default options
var DefaultOptions = Options{
	Timeout:                   15 * time.Second,
	RetryMax:                  0,
	DefaultUserAgent:          BrowserUserAgent,
	MaxResponseBodySizeToRead: math.MaxInt32,
}
