package ports

// ProgressDots renders one indicator per slide.
type ProgressDots interface {
	// Render (re)creates count indicators. Selecting indicator i must call onSelect(i).
	Render(count int, onSelect func(index int))
	// Highlight marks indicator index as the active one and clears the others.
	Highlight(index int)
}

// Counter displays the "current / total" text.
type Counter interface {
	// Update receives the 1-based current position and the total.
	Update(current, total int)
}

// NavButtons are the previous/next controls.
type NavButtons interface {
	// Bind connects the press handlers. Called once.
	Bind(onPrev, onNext func())
	SetPrevEnabled(enabled bool)
	SetNextEnabled(enabled bool)
}

// Fullscreen is the platform full-screen capability.
type Fullscreen interface {
	Active() bool
	// Request enters full-screen. It may fail when the platform rejects it.
	Request() error
	Exit() error
}
