package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Default locators, matched by placeholder text.
const (
	DefaultNameSelector  = `input[placeholder="Full Name"]`
	DefaultEmailSelector = `input[placeholder="Email"]`
	DefaultPhoneSelector = `input[placeholder="Phone"]`

	// DropdownSelector matches single-select controls only.
	DropdownSelector = "select:not([multiple])"
)

// KeystrokeJitter is the exclusive upper bound of the random delay added per keystroke.
const KeystrokeJitter = 100 * time.Millisecond

// FormField is one text input filled character by character.
type FormField struct {
	Name      string
	Selector  string
	Value     string
	BaseDelay time.Duration
}

// FormFiller types into the form fields and picks a dropdown option.
type FormFiller struct {
	// Jitter returns a value in [0, n); rand.IntN when nil.
	Jitter func(n int) int
}

// Fields resolves the three fields for cfg, applying selector overrides.
func (FormFiller) Fields(cfg SessionConfig) []FormField {
	return []FormField{
		{Name: "name", Selector: override(cfg.Selectors.Name, DefaultNameSelector), Value: cfg.Name, BaseDelay: 300 * time.Millisecond},
		{Name: "email", Selector: override(cfg.Selectors.Email, DefaultEmailSelector), Value: cfg.Email, BaseDelay: 250 * time.Millisecond},
		{Name: "phone", Selector: override(cfg.Selectors.Phone, DefaultPhoneSelector), Value: cfg.Phone, BaseDelay: 250 * time.Millisecond},
	}
}

func override(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// Run fills every field, then selects the second dropdown option if there is one.
func (f FormFiller) Run(ctx context.Context, a Actor, cfg SessionConfig) error {
	a.Log.Record("Typing inputs slowly...")

	for _, field := range f.Fields(cfg) {
		if err := f.typeSlowly(ctx, a, field); err != nil {
			a.Log.Record(fmt.Sprintf("Error typing into %s: %v", field.Selector, err))
			return stageError(StageForm, err)
		}
	}

	return f.selectDropdown(ctx, a)
}

func (f FormFiller) typeSlowly(ctx context.Context, a Actor, field FormField) error {
	a.Log.Record(fmt.Sprintf("Typing into %s: %s", field.Selector, field.Value))

	if err := a.Page.Click(ctx, field.Selector); err != nil {
		return fmt.Errorf("focus %s field: %w", field.Name, err)
	}

	jitter := f.Jitter
	if jitter == nil {
		jitter = rand.IntN
	}

	for _, r := range field.Value {
		if err := a.Page.TypeKey(ctx, string(r)); err != nil {
			return fmt.Errorf("type into %s field: %w", field.Name, err)
		}
		delay := field.BaseDelay + time.Duration(jitter(int(KeystrokeJitter/time.Millisecond)))*time.Millisecond
		if err := a.pause(ctx, delay); err != nil {
			return err
		}
	}

	return nil
}

// selectDropdown treats the first option as a placeholder.
func (f FormFiller) selectDropdown(ctx context.Context, a Actor) error {
	html, err := a.Page.HTML(ctx)
	if err != nil {
		return stageError(StageForm, fmt.Errorf("snapshot page: %w", err))
	}

	values, found, err := dropdownOptions(html)
	if err != nil {
		return stageError(StageForm, err)
	}
	if !found {
		return nil
	}

	a.Log.Record("Selecting dropdown option...")
	if len(values) < 2 {
		return nil
	}
	if err := a.Page.SelectOption(ctx, DropdownSelector, values[1]); err != nil {
		return stageError(StageForm, fmt.Errorf("select dropdown option: %w", err))
	}
	return nil
}

// dropdownOptions returns the option values of the first single-select control.
func dropdownOptions(html string) ([]string, bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false, fmt.Errorf("parse page: %w", err)
	}

	sel := doc.Find(DropdownSelector).First()
	if sel.Length() == 0 {
		return nil, false, nil
	}

	var values []string
	sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		// option.value falls back to its text when the attribute is absent
		v, ok := opt.Attr("value")
		if !ok {
			v = strings.TrimSpace(opt.Text())
		}
		values = append(values, v)
	})
	return values, true, nil
}
