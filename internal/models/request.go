package models

// ClickRequest is the body of POST /click.
// Optional fields are pointers so that absent values can be told apart from
// explicit ones when defaults are applied.
// @Description Form submission request
type ClickRequest struct {
	// Page hosting the form
	URL string `json:"url" example:"https://example.com/webinar"`
	// Value typed into the name field (default "John Doe")
	Name *string `json:"name,omitempty" example:"John Doe"`
	// Value typed into the email field (default "demo@example.com")
	Email *string `json:"email,omitempty" example:"demo@example.com"`
	// Value typed into the phone field (default "98553475")
	Phone *string `json:"phone,omitempty" example:"98553475"`
	// Reserved, accepted but not applied (default 0)
	HoldMs *int `json:"holdMs,omitempty" example:"0"`
	// Leave the browser running after the request (default false)
	KeepOpen *bool `json:"keepOpen,omitempty" example:"false"`
	// Reserved, accepted but not applied (default 3000)
	AttributionGraceMs *int `json:"attributionGraceMs,omitempty" example:"3000"`
	// Per-field locator overrides
	Selectors *SelectorOverrides `json:"selectors,omitempty"`
}

// SelectorOverrides replaces the built-in locators field by field.
// Button is a text fragment matched against visible button labels.
type SelectorOverrides struct {
	Name   string `json:"name,omitempty" example:"#full-name"`
	Email  string `json:"email,omitempty" example:"input[type=email]"`
	Phone  string `json:"phone,omitempty" example:"input[name=phone]"`
	Button string `json:"button,omitempty" example:"register my seat"`
}
