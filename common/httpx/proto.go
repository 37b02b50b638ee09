package httpx

const (
	HTTP  = "http"
	HTTPS = "https"
)

// Schemes in the order every target is probed
var Schemes = []string{HTTP, HTTPS}
