package services

import (
	"encoding/json"
	"strings"
)

// Evasion is one property override applied to every document of a session.
type Evasion string

const (
	HideAutomationFlag          Evasion = "hide-automation-flag"
	FakePlugins                 Evasion = "fake-plugins"
	FakeLanguages               Evasion = "fake-languages"
	FakePlatform                Evasion = "fake-platform"
	PassthroughPermissionsQuery Evasion = "passthrough-permissions-query"
)

// AllEvasions is the capability set installed on every session.
var AllEvasions = []Evasion{
	HideAutomationFlag,
	FakePlugins,
	FakeLanguages,
	FakePlatform,
	PassthroughPermissionsQuery,
}

// EvasionPatch is rendered into a script that runs before any page script.
type EvasionPatch struct {
	Capabilities []Evasion
	Languages    []string
	Platform     string
	PluginCount  int
}

// NewEvasionPatch builds the full patch for a profile.
func NewEvasionPatch(p FingerprintProfile) EvasionPatch {
	return EvasionPatch{
		Capabilities: AllEvasions,
		Languages:    p.Languages,
		Platform:     p.Platform,
		PluginCount:  3,
	}
}

// Has reports whether c is part of the patch.
func (p EvasionPatch) Has(c Evasion) bool {
	for _, e := range p.Capabilities {
		if e == c {
			return true
		}
	}
	return false
}

// Script returns the JavaScript source for the patch.
func (p EvasionPatch) Script() string {
	var b strings.Builder
	b.WriteString("(() => {\n")
	for _, c := range p.Capabilities {
		switch c {
		case HideAutomationFlag:
			b.WriteString("  Object.defineProperty(navigator, 'webdriver', { get: () => false });\n")
		case FakePlugins:
			n := p.PluginCount
			if n <= 0 {
				n = 3
			}
			plugins := make([]int, n)
			for i := range plugins {
				plugins[i] = i + 1
			}
			b.WriteString("  Object.defineProperty(navigator, 'plugins', { get: () => " + jsLiteral(plugins) + " });\n")
		case FakeLanguages:
			if len(p.Languages) > 0 {
				b.WriteString("  Object.defineProperty(navigator, 'languages', { get: () => " + jsLiteral(p.Languages) + " });\n")
			}
		case FakePlatform:
			if p.Platform != "" {
				b.WriteString("  Object.defineProperty(navigator, 'platform', { get: () => " + jsLiteral(p.Platform) + " });\n")
			}
		case PassthroughPermissionsQuery:
			b.WriteString(permissionsQueryPatch)
		}
	}
	b.WriteString("})();")
	return b.String()
}

const permissionsQueryPatch = `  if (window.navigator.permissions && window.navigator.permissions.query) {
    const originalQuery = window.navigator.permissions.query.bind(window.navigator.permissions);
    window.navigator.permissions.query = (parameters) =>
      parameters && parameters.name === 'notifications'
        ? Promise.resolve({ state: Notification.permission })
        : originalQuery(parameters);
  }
`

// jsLiteral encodes v as a JavaScript literal.
func jsLiteral(v interface{}) string {
	out, err := json.Marshal(v)
	if err != nil {
		return "undefined"
	}
	return string(out)
}
