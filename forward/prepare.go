package forward

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-radx/dicomforward/dicom/uid"
)

// associationGate is the single process-wide mutual-exclusion gate that
// serializes all association (re)negotiation across every outbound
// destination (§5, §9: "global synchronization on prepareTransfer").
// Steady-state C-STORE calls run outside this gate.
var associationGate sync.Mutex

// substituteTransferSyntax applies the wire-level substitution table
// (§6): Implicit VR Little Endian and Explicit VR Big Endian are promoted
// to Explicit VR Little Endian, as is RLE Lossless when forwarding over
// DICOM (as opposed to STOW-RS, handled separately in web.go). Anything
// else passes through unchanged.
func substituteTransferSyntax(tsuid string) string {
	switch tsuid {
	case uid.ImplicitVRLittleEndian.String(),
		uid.ExplicitVRBigEndian.String(),
		uid.RLELossless.String():
		return uid.ExplicitVRLittleEndian.String()
	default:
		return tsuid
	}
}

// PrepareTransfer implements §4.B: the idempotent negotiation hook exposed
// to callers as prepareTransfer(destination, cuid, tsuid). It computes the
// outbound transfer syntax, and opens or reconfigures-then-reopens the
// destination's association so that a presentation context exists for
// (cuid, outTsuid).
//
// Returns the chosen outbound transfer syntax UID on success.
func PrepareTransfer(ctx context.Context, assoc Association, cuid, tsuid string) (outTsuid string, err error) {
	outTsuid = substituteTransferSyntax(tsuid)

	associationGate.Lock()
	defer associationGate.Unlock()

	tsuids := []string{outTsuid}
	if outTsuid != uid.ExplicitVRLittleEndian.String() {
		tsuids = append(tsuids, uid.ExplicitVRLittleEndian.String())
	}

	if !assoc.IsOpen() {
		assoc.RegisterPresentationContexts(cuid, tsuids)
		if err := assoc.Open(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", ErrNegotiation, err)
		}
		return outTsuid, nil
	}

	hadContext := len(assoc.PCIDsFor(cuid, outTsuid)) > 0
	assoc.RegisterPresentationContexts(cuid, tsuids)

	if !hadContext {
		if err := assoc.Close(ctx, true); err != nil {
			return "", fmt.Errorf("%w: %v", ErrNegotiation, err)
		}
		if err := assoc.Open(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", ErrNegotiation, err)
		}
	}

	return outTsuid, nil
}
