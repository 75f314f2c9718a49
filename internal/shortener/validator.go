package shortener

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

var (
	errEmptyURL    = errors.New("empty url")
	errRelativeURL = errors.New("relative URL without a base")
	errOpaqueURL   = errors.New("url has no authority component")
	errEmptyHost   = errors.New("empty host")
)

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
	"ftp":   "21",
}

// DefaultSchemes are accepted when a Validator is built without an explicit list.
var DefaultSchemes = []string{"http", "https"}

// Validator parses candidate URLs and returns their canonical form.
type Validator struct {
	schemes map[string]struct{}
}

// NewValidator creates a validator accepting the given schemes (case-insensitive).
func NewValidator(schemes ...string) *Validator {
	if len(schemes) == 0 {
		schemes = DefaultSchemes
	}

	allowed := make(map[string]struct{}, len(schemes))

	for _, s := range schemes {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			allowed[s] = struct{}{}
		}
	}

	return &Validator{schemes: allowed}
}

// Validate parses raw as an absolute URL and returns its canonical string.
// The canonical form has a lowercase scheme and host, no default port, and "/" for an empty path.
func (v *Validator) Validate(raw string) (string, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return "", &InvalidURLError{Input: raw, Reason: errEmptyURL}
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", &InvalidURLError{Input: raw, Reason: err}
	}

	if u.Scheme == "" {
		return "", &InvalidURLError{Input: raw, Reason: errRelativeURL}
	}

	if _, ok := v.schemes[u.Scheme]; !ok {
		return "", &InvalidURLError{Input: raw, Reason: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}

	if u.Opaque != "" {
		return "", &InvalidURLError{Input: raw, Reason: errOpaqueURL}
	}

	if u.Hostname() == "" {
		return "", &InvalidURLError{Input: raw, Reason: errEmptyHost}
	}

	if err := canonicalize(u); err != nil {
		return "", &InvalidURLError{Input: raw, Reason: err}
	}

	return u.String(), nil
}

func canonicalize(u *url.URL) error {
	host, err := asciiHost(u.Hostname())
	if err != nil {
		return err
	}

	port := u.Port()

	if port == defaultPorts[u.Scheme] {
		port = ""
	}

	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}

	if port != "" {
		u.Host = net.JoinHostPort(strings.Trim(host, "[]"), port)
	} else {
		u.Host = host
	}

	if u.Path == "" && u.RawPath == "" {
		u.Path = "/"
	}

	return nil
}

// asciiHost lowercases host and converts internationalized names to punycode.
func asciiHost(host string) (string, error) {
	host = strings.ToLower(host)

	// IP literals, including zoned IPv6, are not domain names.
	if strings.Contains(host, ":") || net.ParseIP(host) != nil {
		return host, nil
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("invalid host %q: %w", host, err)
	}

	return ascii, nil
}
