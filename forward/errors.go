package forward

import "errors"

// ErrConfiguration indicates the engine was invoked with an unusable
// configuration, e.g. an empty destination list. Always raised to the
// caller; never recovered from by continuing to the next destination.
var ErrConfiguration = errors.New("forward: configuration error")

// ErrNegotiation indicates no outbound presentation context could be found
// or prepared for a destination. Raised per-destination; other destinations
// in the same fan-out continue.
var ErrNegotiation = errors.New("forward: presentation context negotiation failed")

// ErrFileAbort indicates an editor (or the parse/transcode step) aborted
// this single instance for this single destination. The outbound
// association is left usable and the next destination is still contacted.
var ErrFileAbort = errors.New("forward: per-file abort")

// ErrConnectionAbort indicates an editor raised a connection-fatal
// condition. The inbound association is released and the error is
// propagated to the caller; no further destinations in this invocation are
// contacted.
var ErrConnectionAbort = errors.New("forward: connection abort")

// ErrTransport indicates a C-STORE or STOW-RS I/O failure. Logged and
// treated like ErrFileAbort: the next destination is still contacted.
var ErrTransport = errors.New("forward: transport error")
