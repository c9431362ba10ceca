package forward

import (
	"fmt"

	"github.com/go-radx/dicomforward/stowrs"
)

// DestinationKind distinguishes the two outbound transport shapes a
// ForwardDestination can take (§3 Data Model).
type DestinationKind int

const (
	// DicomDestinationKind forwards via a DICOM association (C-STORE).
	DicomDestinationKind DestinationKind = iota
	// WebDestinationKind forwards via STOW-RS over HTTP.
	WebDestinationKind
)

// ForwardDestination is one outbound target an inbound instance fans out
// to: an association (DICOM) or a web client (STOW-RS), an ordered
// attribute-editor chain, a progress sink, and an optional mask area
// applied to pixel data bound for this destination only.
type ForwardDestination struct {
	Name string
	Kind DestinationKind

	// Association is set when Kind == DicomDestinationKind.
	Association Association
	// WebClient is set when Kind == WebDestinationKind.
	WebClient *stowrs.Client

	// CUID is the SOP class this destination accepts; used to constrain
	// presentation context negotiation for DICOM destinations.
	CUID string

	Editors  []AttributeEditor
	MaskArea *MaskArea
	Progress ProgressSink
}

// Validate reports a configuration error in d, if any (§4.B: negotiation
// assumes a well-formed destination).
func (d *ForwardDestination) Validate() error {
	switch d.Kind {
	case DicomDestinationKind:
		if d.Association == nil {
			return fmt.Errorf("%w: destination %q has no association", ErrConfiguration, d.Name)
		}
	case WebDestinationKind:
		if d.WebClient == nil {
			return fmt.Errorf("%w: destination %q has no web client", ErrConfiguration, d.Name)
		}
	default:
		return fmt.Errorf("%w: destination %q has unknown kind %d", ErrConfiguration, d.Name, d.Kind)
	}
	return nil
}

// notify is a nil-safe wrapper around d.Progress.Notify.
func (d *ForwardDestination) notify(state TransferState, iuid, cuid string, dicomStatusCode uint16, progress ProgressStatus, remaining int) {
	if d.Progress == nil {
		return
	}
	d.Progress.Notify(state, iuid, cuid, dicomStatusCode, progress, remaining)
}
