package services

import (
	"context"
	"fmt"
	"time"
)

// GestureKind is the type of one scripted input event.
type GestureKind string

const (
	GestureMove   GestureKind = "move"
	GestureClick  GestureKind = "click"
	GestureScroll GestureKind = "scroll"
)

// Gesture is one step of the choreography followed by a fixed pause.
type Gesture struct {
	Kind  GestureKind
	X, Y  float64
	Steps int
	// DeltaY is the scroll distance for GestureScroll.
	DeltaY int
	Pause  time.Duration
}

// DefaultChoreography produces pointer and scroll telemetry before the form is touched.
var DefaultChoreography = []Gesture{
	{Kind: GestureMove, X: 100, Y: 100, Steps: 25, Pause: 800 * time.Millisecond},
	{Kind: GestureMove, X: 200, Y: 300, Steps: 30, Pause: 1000 * time.Millisecond},
	{Kind: GestureClick, X: 300, Y: 500, Pause: 1000 * time.Millisecond},
	{Kind: GestureScroll, DeltaY: 200, Pause: 1500 * time.Millisecond},
	{Kind: GestureScroll, DeltaY: 300, Pause: 1500 * time.Millisecond},
}

// InteractionSimulator replays a fixed choreography, blind to page content.
type InteractionSimulator struct {
	Gestures []Gesture
}

// NewInteractionSimulator uses DefaultChoreography.
func NewInteractionSimulator() InteractionSimulator {
	return InteractionSimulator{Gestures: DefaultChoreography}
}

// Run dispatches every gesture in order.
func (s InteractionSimulator) Run(ctx context.Context, a Actor) error {
	a.Log.Record("Simulating mouse movements...")

	for _, g := range s.Gestures {
		var err error
		switch g.Kind {
		case GestureMove:
			err = a.Page.MouseMove(ctx, g.X, g.Y, g.Steps)
		case GestureClick:
			err = a.Page.MouseClick(ctx, g.X, g.Y)
		case GestureScroll:
			err = a.Page.ScrollBy(ctx, g.DeltaY)
		default:
			err = fmt.Errorf("unknown gesture %q", g.Kind)
		}
		if err != nil {
			return stageError(StageInteraction, fmt.Errorf("%s gesture: %w", g.Kind, err))
		}
		if err := a.pause(ctx, g.Pause); err != nil {
			return stageError(StageInteraction, err)
		}
	}

	return nil
}
