package services

import (
	"math/rand/v2"
	"strings"
)

// FingerprintProfile is the client identity presented to the target page.
type FingerprintProfile struct {
	UserAgent string
	Platform  string
	Languages []string
	Headers   map[string]string
}

// AcceptLanguage renders Languages as an Accept-Language header value.
func (p FingerprintProfile) AcceptLanguage() string {
	if len(p.Languages) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.Languages))
	parts = append(parts, p.Languages[0])
	for _, l := range p.Languages[1:] {
		parts = append(parts, l+";q=0.9")
	}
	return strings.Join(parts, ",")
}

// ExtraHeaders returns the headers sent with every request of the session.
func (p FingerprintProfile) ExtraHeaders() map[string]interface{} {
	headers := make(map[string]interface{}, len(p.Headers)+1)
	if al := p.AcceptLanguage(); al != "" {
		headers["Accept-Language"] = al
	}
	for k, v := range p.Headers {
		headers[k] = v
	}
	return headers
}

var defaultLanguages = []string{"en-US", "en"}

var defaultHeaders = map[string]string{
	"Referer": "https://www.google.com/",
	"DNT":     "1",
}

// FingerprintSet is an immutable, ordered table of identities.
type FingerprintSet struct {
	profiles []FingerprintProfile
}

// NewFingerprintSet copies profiles into a new set.
func NewFingerprintSet(profiles ...FingerprintProfile) *FingerprintSet {
	cp := make([]FingerprintProfile, len(profiles))
	copy(cp, profiles)
	return &FingerprintSet{profiles: cp}
}

// DefaultFingerprints is loaded once at process start.
var DefaultFingerprints = NewFingerprintSet(
	FingerprintProfile{
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		Platform:  "Win32",
		Languages: defaultLanguages,
		Headers:   defaultHeaders,
	},
	FingerprintProfile{
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.1 Safari/605.1.15",
		Platform:  "MacIntel",
		Languages: defaultLanguages,
		Headers:   defaultHeaders,
	},
	FingerprintProfile{
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36",
		Platform:  "Linux x86_64",
		Languages: defaultLanguages,
		Headers:   defaultHeaders,
	},
)

// Len returns the number of profiles.
func (s *FingerprintSet) Len() int {
	return len(s.profiles)
}

// At returns the i-th profile.
func (s *FingerprintSet) At(i int) FingerprintProfile {
	return s.profiles[i]
}

// Pick draws one profile uniformly; intn is rand.IntN when nil.
func (s *FingerprintSet) Pick(intn func(n int) int) FingerprintProfile {
	if intn == nil {
		intn = rand.IntN
	}
	return s.profiles[intn(len(s.profiles))]
}
