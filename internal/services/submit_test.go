package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionTextMatch(t *testing.T) {
	page, clock, rec := newFakePage(), newFakeClock(), &memRecorder{}
	page.html = buttonsPage

	out, err := NewSubmissionLocator().Run(context.Background(), newActor(page, clock, rec), "")
	require.NoError(t, err)

	assert.Equal(t, SubmitOutcome{Clicked: true, Method: SubmitByText, Text: "register my seat"}, out)
	activations := page.Calls("activate")
	require.Len(t, activations, 1)
	assert.Equal(t, []interface{}{ButtonSelector, "register my seat"}, activations[0].Args)
	assert.Empty(t, page.Calls("mouseclick"))

	// settle precedes the visibility wait
	assert.Equal(t, []time.Duration{5 * time.Second}, clock.Pauses())
	wait := page.Calls("waitvisible")
	require.Len(t, wait, 1)
	assert.Equal(t, []interface{}{ButtonSelector, 10 * time.Second}, wait[0].Args)
	assert.Equal(t, 1, wait[0].Stamp)

	assert.True(t, rec.Contains("Found 2 buttons on page"))
	assert.True(t, rec.Contains("Button texts on page: cancel, register my seat"))
}

func TestSubmissionOverrideTarget(t *testing.T) {
	page, clock, rec := newFakePage(), newFakeClock(), &memRecorder{}
	page.html = `<button>Next step</button><button>Join NOW</button>`

	out, err := NewSubmissionLocator().Run(context.Background(), newActor(page, clock, rec), "  Join Now ")
	require.NoError(t, err)

	assert.Equal(t, SubmitOutcome{Clicked: true, Method: SubmitByText, Text: "join now"}, out)
	assert.Equal(t, []interface{}{ButtonSelector, "join now"}, page.Calls("activate")[0].Args)
}

func TestSubmissionIgnoresTemplateButtons(t *testing.T) {
	page, clock, rec := newFakePage(), newFakeClock(), &memRecorder{}
	page.html = `<template><button>Register My Seat</button></template><button>Cancel</button>`
	page.centerX, page.centerY = 40, 80

	out, err := NewSubmissionLocator().Run(context.Background(), newActor(page, clock, rec), "")
	require.NoError(t, err)

	assert.Equal(t, SubmitOutcome{Clicked: true, Method: SubmitByFallback, Text: "cancel"}, out)
	assert.Equal(t, []interface{}{ButtonSelector, 0}, page.Calls("center")[0].Args)
	assert.True(t, rec.Contains("Found 1 buttons on page"))
	assert.False(t, rec.Contains("Found button with text"))
}

func TestSubmissionMatchesLiveDocument(t *testing.T) {
	page, clock, rec := newFakePage(), newFakeClock(), &memRecorder{}
	page.html = `<button>Cancel</button><button>Register My Seat</button>`
	// re-rendered after the snapshot was taken
	page.liveHTML = `<button>Register My Seat</button><button>Back</button><button>Cancel</button>`

	out, err := NewSubmissionLocator().Run(context.Background(), newActor(page, clock, rec), "")
	require.NoError(t, err)

	assert.Equal(t, SubmitOutcome{Clicked: true, Method: SubmitByText, Text: "register my seat"}, out)
	assert.Len(t, page.Calls("activate"), 1)
	assert.Empty(t, page.Calls("center"))
}

func TestSubmissionFallbackUsesLiveCount(t *testing.T) {
	page, clock, rec := newFakePage(), newFakeClock(), &memRecorder{}
	page.html = `<button>Next</button>`
	page.liveHTML = `<p>gone</p>`

	out, err := NewSubmissionLocator().Run(context.Background(), newActor(page, clock, rec), "")
	require.NoError(t, err)

	assert.False(t, out.Clicked)
	assert.Empty(t, page.Calls("center"))
	assert.True(t, rec.Contains("Button not found"))
}

func TestSubmissionGeometricFallback(t *testing.T) {
	page, clock, rec := newFakePage(), newFakeClock(), &memRecorder{}
	page.html = `<button>Submit</button><button>Next</button>`
	page.centerX, page.centerY = 412, 618

	out, err := NewSubmissionLocator().Run(context.Background(), newActor(page, clock, rec), "")
	require.NoError(t, err)

	assert.Equal(t, SubmitOutcome{Clicked: true, Method: SubmitByFallback, Text: "submit"}, out)
	assert.Empty(t, page.Calls("activate"))
	assert.Equal(t, []interface{}{ButtonSelector, 0}, page.Calls("center")[0].Args)
	assert.Equal(t, []interface{}{412.0, 618.0}, page.Calls("mouseclick")[0].Args)
	assert.True(t, rec.Contains("Button clicked via mouse fallback on first button"))
}

func TestSubmissionNoButtons(t *testing.T) {
	page, clock, rec := newFakePage(), newFakeClock(), &memRecorder{}
	page.html = `<form><input type="submit"></form>`

	out, err := NewSubmissionLocator().Run(context.Background(), newActor(page, clock, rec), "")
	require.NoError(t, err)

	assert.False(t, out.Clicked)
	assert.Equal(t, SubmitNone, out.Method)
	assert.Empty(t, page.Calls("mouseclick"))
	assert.True(t, rec.Contains("Button not found"))
}

func TestSubmissionWaitVisibleFails(t *testing.T) {
	page, clock, rec := newFakePage(), newFakeClock(), &memRecorder{}
	page.waitErr = context.DeadlineExceeded

	_, err := NewSubmissionLocator().Run(context.Background(), newActor(page, clock, rec), "")
	require.Error(t, err)

	assert.Equal(t, StageSubmission, StageOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, page.Calls("html"))
}

func TestButtonTexts(t *testing.T) {
	texts, err := buttonTexts(`<div><button>
		<span>Register</span> My Seat
	</button><button></button><input type="button" value="Ignored"></div>`)
	require.NoError(t, err)

	assert.Equal(t, []string{"register my seat", ""}, texts)

	texts, err = buttonTexts(`<template><button>Hidden</button></template><button> OK </button>`)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, texts)
}
