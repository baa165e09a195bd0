package lago

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/fivetwenty-io/lago-client/internal/constants"
)

type regionKind int

const (
	regionUS regionKind = iota
	regionEU
	regionCustom
)

// Region maps a Lago deployment to its base API URL.
// The zero value is the US region.
type Region struct {
	kind regionKind
	url  string
}

var (
	// RegionUS is the US-hosted Lago API.
	RegionUS = Region{kind: regionUS}
	// RegionEU is the EU-hosted Lago API.
	RegionEU = Region{kind: regionEU}
)

// CustomRegion points the client at a self-hosted deployment or a mock server.
func CustomRegion(endpoint string) Region {
	return Region{kind: regionCustom, url: strings.TrimRight(endpoint, "/")}
}

// Endpoint returns the base URL for the region.
func (r Region) Endpoint() string {
	switch r.kind {
	case regionEU:
		return constants.EUEndpoint
	case regionCustom:
		return r.url
	default:
		return constants.USEndpoint
	}
}

// Validate checks a custom endpoint with ValidateEndpoint. The hosted
// regions are always valid.
func (r Region) Validate() error {
	if r.kind != regionCustom {
		return nil
	}

	return ValidateEndpoint(r.url)
}

// ValidateEndpoint returns a Configuration error unless endpoint is an
// absolute http or https URL with a host.
func ValidateEndpoint(endpoint string) error {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return NewConfigurationError(fmt.Errorf("%w: %w", ErrInvalidEndpoint, err))
	}

	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Hostname() == "" {
		return NewConfigurationError(fmt.Errorf("%w: %q is not an http(s) URL with a host", ErrInvalidEndpoint, endpoint))
	}

	return nil
}

// IsCustom reports whether the region carries a caller-supplied URL.
func (r Region) IsCustom() bool {
	return r.kind == regionCustom
}

func (r Region) String() string {
	switch r.kind {
	case regionEU:
		return "eu"
	case regionCustom:
		return r.url
	default:
		return "us"
	}
}

// ParseRegion accepts "us", "eu" or a URL. An empty string is the US region.
func ParseRegion(value string) Region {
	value = strings.TrimSpace(value)

	switch strings.ToLower(value) {
	case "", "us":
		return RegionUS
	case "eu":
		return RegionEU
	default:
		return CustomRegion(value)
	}
}

// RegionFromEnv resolves LAGO_REGION, falling back to LAGO_API_URL as a custom
// endpoint, then to the US region. lookup defaults to os.LookupEnv.
func RegionFromEnv(lookup func(string) (string, bool)) Region {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if value, ok := lookup(constants.EnvRegion); ok && strings.TrimSpace(value) != "" {
		return ParseRegion(value)
	}

	if value, ok := lookup(constants.EnvAPIURL); ok && strings.TrimSpace(value) != "" {
		return CustomRegion(strings.TrimSpace(value))
	}

	return RegionUS
}
