package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/slidedeck/pkg/domain"
)

// LoggingHooks logs every lifecycle event at Debug, and failed activations at Warn.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSlideEnter: func(ctx context.Context, e *domain.SlideEvent) {
			logger.Debug("slide_enter", "index", e.Index, "total", e.Total)
		},
		OnSlideLeave: func(ctx context.Context, e *domain.SlideEvent) {
			logger.Debug("slide_leave", "index", e.Index)
		},
		OnSettle: func(ctx context.Context, e *domain.SlideEvent) {
			logger.Debug("transition_settled", "index", e.Index)
		},
		OnReject: func(ctx context.Context, e *domain.RejectEvent) {
			logger.Debug("navigation_rejected", "requested", e.Requested, "reason", e.Reason)
		},
		OnActivate: func(ctx context.Context, e *domain.ActivationEvent) {
			if e.Error != "" {
				logger.Warn("slide_activate", "index", e.Index, "err", e.Error)
				return
			}
			logger.Debug("slide_activate", "index", e.Index, "hooked", e.Hooked)
		},
	}
}
