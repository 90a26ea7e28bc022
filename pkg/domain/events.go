package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSlideEnter         EventType = "slide_enter"
	EventSlideLeave         EventType = "slide_leave"
	EventSlideActivate      EventType = "slide_activate"
	EventTransitionSettled  EventType = "transition_settled"
	EventNavigationRejected EventType = "navigation_rejected"
)

// RejectReason explains why a navigation request was ignored.
type RejectReason string

const (
	RejectOutOfRange    RejectReason = "out_of_range"
	RejectTransitioning RejectReason = "transitioning"
	RejectInert         RejectReason = "inert"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// SlideEvent represents entering, leaving or settling on a slide.
type SlideEvent struct {
	EventBase
	Index int `json:"index"`
	Total int `json:"total"`
}

// ActivationEvent represents the deferred activation of a slide.
// Hooked is false when no activation hook resolved for the index.
type ActivationEvent struct {
	EventBase
	Index  int    `json:"index"`
	Hooked bool   `json:"hooked"`
	Error  string `json:"error,omitempty"`
}

// RejectEvent represents a navigation request that was ignored.
type RejectEvent struct {
	EventBase
	Requested int          `json:"requested"`
	Reason    RejectReason `json:"reason"`
}

// LifecycleHooks defines callbacks for controller observability.
type LifecycleHooks struct {
	OnSlideEnter func(context.Context, *SlideEvent)
	OnSlideLeave func(context.Context, *SlideEvent)
	OnSettle     func(context.Context, *SlideEvent)
	OnActivate   func(context.Context, *ActivationEvent)
	OnReject     func(context.Context, *RejectEvent)
}

// MergeHooks fans every callback out to all the given hook sets, in order.
func MergeHooks(sets ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnSlideEnter: func(ctx context.Context, e *SlideEvent) {
			for _, h := range sets {
				if h.OnSlideEnter != nil {
					h.OnSlideEnter(ctx, e)
				}
			}
		},
		OnSlideLeave: func(ctx context.Context, e *SlideEvent) {
			for _, h := range sets {
				if h.OnSlideLeave != nil {
					h.OnSlideLeave(ctx, e)
				}
			}
		},
		OnSettle: func(ctx context.Context, e *SlideEvent) {
			for _, h := range sets {
				if h.OnSettle != nil {
					h.OnSettle(ctx, e)
				}
			}
		},
		OnActivate: func(ctx context.Context, e *ActivationEvent) {
			for _, h := range sets {
				if h.OnActivate != nil {
					h.OnActivate(ctx, e)
				}
			}
		},
		OnReject: func(ctx context.Context, e *RejectEvent) {
			for _, h := range sets {
				if h.OnReject != nil {
					h.OnReject(ctx, e)
				}
			}
		},
	}
}
