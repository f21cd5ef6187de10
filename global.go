package dqe

import "sync"

var (
	initOnce sync.Once

	globals struct {
		main            *Queue
		background      *Queue
		utility         *Queue
		def             *Queue
		userInitiated   *Queue
		userInteractive *Queue
	}
)

// Initialize creates and names the six standard singleton queues: the
// serial main queue and the five concurrent quality-of-service globals.
// Safe to call multiple times; only the first call has any effect. The
// accessors below call it themselves, so explicit initialization is only
// needed when identity queries must be meaningful before any accessor has
// run.
func Initialize() {
	initOnce.Do(func() {
		globals.main = New(WithName(nameMain))
		globals.background = New(WithConcurrent(), WithName(nameBackground))
		globals.utility = New(WithConcurrent(), WithName(nameUtility))
		globals.def = New(WithConcurrent(), WithName(nameDefault))
		globals.userInitiated = New(WithConcurrent(), WithName(nameUserInitiated))
		globals.userInteractive = New(WithConcurrent(), WithName(nameUserInteractive))
	})
}

// Main returns the serial main queue singleton, pre-named "main".
func Main() *Queue {
	Initialize()
	return globals.main
}

// Background returns the background quality-of-service global queue.
func Background() *Queue {
	Initialize()
	return globals.background
}

// Utility returns the utility quality-of-service global queue.
func Utility() *Queue {
	Initialize()
	return globals.utility
}

// Default returns the default quality-of-service global queue.
func Default() *Queue {
	Initialize()
	return globals.def
}

// UserInitiated returns the user-initiated quality-of-service global queue.
func UserInitiated() *Queue {
	Initialize()
	return globals.userInitiated
}

// UserInteractive returns the user-interactive quality-of-service global
// queue.
func UserInteractive() *Queue {
	Initialize()
	return globals.userInteractive
}

// Global returns the singleton queue for a reserved kind, or false for a
// custom kind. Custom queues are only discoverable through the handle that
// created them.
func Global(k Kind) (*Queue, bool) {
	if !k.Reserved() {
		return nil, false
	}
	Initialize()
	switch k {
	case KindMain:
		return globals.main, true
	case KindBackground:
		return globals.background, true
	case KindUtility:
		return globals.utility, true
	case KindDefault:
		return globals.def, true
	case KindUserInitiated:
		return globals.userInitiated, true
	case KindUserInteractive:
		return globals.userInteractive, true
	}
	return nil, false
}
