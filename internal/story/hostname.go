package story

import "strings"

// HostName derives the display host from a story url. For "scheme://host/..."
// it is the authority; without a scheme it is the first "/"-separated segment.
// A leading "www." is dropped.
func HostName(url string) string {
	var host string
	if strings.Contains(url, "://") {
		host = strings.Split(url, "/")[2]
	} else {
		host = strings.Split(url, "/")[0]
	}
	return strings.TrimPrefix(host, "www.")
}
