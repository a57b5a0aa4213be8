package http

import (
	"fmt"
	"strings"

	"github.com/aws/aws-request-core/internal/uri"
)

// ValidateEndpointHost validates that a host string, optionally carrying a
// ":port" suffix, is composed of valid RFC 3986 host labels and, if present,
// a valid port number. A host may be at most 255 characters and may end in
// a trailing "." for fully-qualified domain names.
func ValidateEndpointHost(host string) error {
	hostname := host
	var port string
	var hasPort bool

	if idx := strings.LastIndex(host, ":"); idx != -1 {
		hostname = host[:idx]
		port = host[idx+1:]
		hasPort = true
	}

	if hasPort {
		if len(port) == 0 || !uri.ValidPortNumber(port) {
			return fmt.Errorf("invalid port number %q", port)
		}
	}

	if len(hostname) == 0 {
		return fmt.Errorf("hostname cannot be empty")
	}
	if len(hostname) > 255 {
		return fmt.Errorf("hostname %q exceeds 255 characters", hostname)
	}

	labels := strings.Split(hostname, ".")
	for i, label := range labels {
		if i == len(labels)-1 && label == "" {
			// trailing dot denotes a fully-qualified domain name
			continue
		}
		if !uri.ValidHostLabel(label) {
			return fmt.Errorf("invalid host label %q in %q", label, hostname)
		}
	}

	return nil
}
