package navigation

import (
	"net/url"
	"strings"
)

// DefaultScheme is prepended to input that parses neither as an absolute
// address nor relative to the current one.
const DefaultScheme = "http://"

// knownSchemes are the protocols an address may carry. Anything else
// (including "localhost" in "localhost:8080") is not an address.
var knownSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"ftp":    true,
	"file":   true,
	"jar":    true,
	"mailto": true,
}

// networkSchemes must name a host.
var networkSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
}

// Address is a canonical, fully-resolved location. The zero Address means
// "no address". Addresses are only produced by Resolve.
type Address struct {
	raw string
}

// String returns the canonical form.
func (a Address) String() string {
	return a.raw
}

// IsZero reports whether a is the empty address.
func (a Address) IsZero() bool {
	return a.raw == ""
}

// URL returns a parsed copy of the address, or nil for the zero Address.
func (a Address) URL() *url.URL {
	if a.IsZero() {
		return nil
	}
	u, err := url.Parse(a.raw)
	if err != nil {
		return nil
	}
	return u
}

// Resolve turns user input into an Address. Candidates are tried in order:
// the input as an absolute address, the input appended to current, and the
// input with DefaultScheme prepended. A zero current skips the second form.
func Resolve(input string, current Address) (Address, error) {
	if addr, ok := parseAddress(input); ok {
		return addr, nil
	}
	if !current.IsZero() {
		if addr, ok := parseAddress(current.raw + "/" + input); ok {
			return addr, nil
		}
	}
	if addr, ok := parseAddress(DefaultScheme + input); ok {
		return addr, nil
	}
	return Address{}, &ResolutionError{Input: input}
}

// parseAddress reports whether s is a structurally valid absolute address.
func parseAddress(s string) (Address, bool) {
	if s == "" {
		return Address{}, false
	}
	u, err := url.Parse(s)
	if err != nil {
		return Address{}, false
	}
	scheme := strings.ToLower(u.Scheme)
	if !knownSchemes[scheme] {
		return Address{}, false
	}
	if networkSchemes[scheme] && u.Host == "" {
		return Address{}, false
	}
	// jar:<archive address>!/<entry>
	if scheme == "jar" && !strings.Contains(u.Opaque, "!/") {
		return Address{}, false
	}
	return Address{raw: u.String()}, true
}
