package forward

import (
	"context"
	"io"
)

// InboundReleaser is the handle Params carries back to the association that
// produced the inbound instance, so a CONNECTION_EXCEPTION abort can release
// it. The inbound listener that constructs Params is out of scope for this
// package; only this narrow capability is consumed.
type InboundReleaser interface {
	Release(ctx context.Context) error
}

// Params is an immutable record describing one inbound instance to forward.
// It lives for exactly one forwarding invocation and Data is consumed at
// most once across however many destinations the instance fans out to.
type Params struct {
	// IUID is the SOP Instance UID of the inbound instance.
	IUID string
	// CUID is the SOP Class UID of the inbound instance.
	CUID string
	// TSUID is the transfer syntax UID the inbound bytes are encoded under.
	TSUID string
	// PCID is the inbound presentation-context id the instance arrived on.
	PCID uint8
	// Data is the lazy, read-once byte stream of the inbound instance's
	// dataset body (header and pixel data, not including a DICM preamble).
	Data io.Reader
	// Inbound is the association the instance arrived on. Released only on
	// a CONNECTION_EXCEPTION abort.
	Inbound InboundReleaser
}

// AbortSignal is the outcome an AttributeEditor can leave in an
// AttributeEditorContext after inspecting or mutating a dataset.
type AbortSignal int

const (
	// AbortNone means no editor asked for an abort; continue normally.
	AbortNone AbortSignal = iota
	// AbortFileException aborts only the current (destination, instance)
	// pair; the outbound association remains usable for the next instance.
	AbortFileException
	// AbortConnectionException is connection-fatal: the inbound association
	// is released and the whole forwarding invocation is aborted.
	AbortConnectionException
)

func (a AbortSignal) String() string {
	switch a {
	case AbortNone:
		return "NONE"
	case AbortFileException:
		return "FILE_EXCEPTION"
	case AbortConnectionException:
		return "CONNECTION_EXCEPTION"
	default:
		return "UNKNOWN"
	}
}

// AttributeEditorContext carries per-destination, per-instance mutable
// state threaded through the editor pipeline (§4.C).
type AttributeEditorContext struct {
	Abort        AbortSignal
	AbortMessage string
	MaskArea     *MaskArea
}

// MaskArea is a declarative burn-in region: a list of rectangles in pixel
// coordinates to black out in the decoded image before re-encoding. This
// supplements spec.md's abstract "polygon/rectangle" description with the
// common de-identification case of rectangular burned-in annotation
// regions.
type MaskArea struct {
	Rectangles []Rectangle
}

// Rectangle is a pixel-space region, upper-left inclusive, lower-right
// exclusive, matching Go's image.Rectangle convention.
type Rectangle struct {
	MinX, MinY, MaxX, MaxY int
}

// TransferState is the success/failure outcome reported in a progress
// notification, independent of the lower-level DICOM status code.
type TransferState int

const (
	// TransferSuccess means the instance was accepted by the destination.
	TransferSuccess TransferState = iota
	// TransferProcessingFailure means the destination rejected the instance
	// or the transfer otherwise failed.
	TransferProcessingFailure
)

// ProgressStatus is the coarse-grained lifecycle status published alongside
// TransferState.
type ProgressStatus int

const (
	// ProgressCompleted marks a (destination, instance) pair done, successfully.
	ProgressCompleted ProgressStatus = iota
	// ProgressFailed marks a (destination, instance) pair done, unsuccessfully.
	ProgressFailed
)

// ProgressSink receives exactly one notification per (destination,
// instance) pair forwarded, regardless of outcome.
type ProgressSink interface {
	Notify(state TransferState, iuid, cuid string, dicomStatusCode uint16, progress ProgressStatus, remaining int)
}
