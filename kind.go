package dqe

// Reserved queue names. Each maps to exactly one process-wide singleton
// queue created by Initialize.
const (
	nameMain            = "main"
	nameBackground      = "background"
	nameUtility         = "utility"
	nameDefault         = "default"
	nameUserInitiated   = "userInitiated"
	nameUserInteractive = "userInteractive"
)

// Kind identifies a queue's logical role: one of the six reserved kinds,
// or a custom kind carrying an arbitrary caller-supplied name.
//
// The zero value is a custom kind with an empty name.
type Kind struct {
	name     string
	reserved bool
}

// The reserved kinds. KindMain names the serial main queue; the remaining
// five name the concurrent quality-of-service globals.
var (
	KindMain            = Kind{nameMain, true}
	KindBackground      = Kind{nameBackground, true}
	KindUtility         = Kind{nameUtility, true}
	KindDefault         = Kind{nameDefault, true}
	KindUserInitiated   = Kind{nameUserInitiated, true}
	KindUserInteractive = Kind{nameUserInteractive, true}
)

// CustomKind returns a custom kind carrying name verbatim.
func CustomKind(name string) Kind {
	return Kind{name: name}
}

// KindFromName is the inverse of [Kind.Name]. An exact match against one of
// the six reserved names yields that kind; any other string yields a custom
// kind carrying it verbatim.
func KindFromName(name string) Kind {
	switch name {
	case nameMain:
		return KindMain
	case nameBackground:
		return KindBackground
	case nameUtility:
		return KindUtility
	case nameDefault:
		return KindDefault
	case nameUserInitiated:
		return KindUserInitiated
	case nameUserInteractive:
		return KindUserInteractive
	}
	return CustomKind(name)
}

// Name returns the kind's name. Total over all kinds.
func (k Kind) Name() string { return k.name }

// Reserved reports whether k is one of the six reserved kinds.
func (k Kind) Reserved() bool { return k.reserved }

// String implements fmt.Stringer.
func (k Kind) String() string { return k.name }
