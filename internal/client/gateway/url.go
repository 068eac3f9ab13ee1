package gateway

import (
	"net/url"
	"strings"
)

// JoinURL joins base and endpoint with exactly one slash between them, no
// matter how many slashes either side carries, so JoinURL(b+"/", "/"+e)
// and JoinURL(b, e) are the same URL.
func JoinURL(base, endpoint string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// withQuery appends q to target, respecting a query string already present.
func withQuery(target string, q url.Values) string {
	if len(q) == 0 {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + q.Encode()
}
