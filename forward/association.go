package forward

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/go-radx/dicomforward/dimse/dul"
	"github.com/go-radx/dicomforward/dimse/scu"
)

// Association is the capability the forward controller and negotiator
// consume from an outbound DICOM peer connection (§6 "Association
// interface"). DicomAssociation is the concrete implementation atop
// dimse/dul and dimse/scu; tests may substitute a fake.
type Association interface {
	// IsOpen reports whether the association holds at least one negotiated,
	// accepted presentation context.
	IsOpen() bool
	// TransferSyntax returns the negotiated transfer syntax for pcid.
	TransferSyntax(pcid uint8) (string, bool)
	// PCIDsFor returns the accepted presentation-context ids for cuid,
	// optionally narrowed to one matching tsuid.
	PCIDsFor(cuid string, tsuid string) []uint8
	// AcceptedTransferSyntax reports whether pcid's negotiated transfer
	// syntax equals tsuid.
	AcceptedTransferSyntax(pcid uint8, tsuid string) bool
	// CStore sends the bytes produced by write as a C-STORE-RQ dataset body
	// under tsuid, for the given SOP class/instance.
	CStore(ctx context.Context, cuid, iuid, tsuid string, write func(w io.Writer) error) error
	// Release performs an orderly A-RELEASE.
	Release(ctx context.Context) error
	// RegisterPresentationContexts records the (abstract syntax, transfer
	// syntax) pairs that the next Open call should request.
	RegisterPresentationContexts(cuid string, tsuids []string)
	// Open establishes the association using the registered presentation
	// contexts, if not already open.
	Open(ctx context.Context) error
	// Close tears the association down. When reopen is true, the caller
	// intends to immediately Open again with a larger context set.
	Close(ctx context.Context, reopen bool) error
}

// DicomAssociation is the default Association implementation: a long-lived
// outbound association to one DICOM peer, built on scu.Client and
// dimse/dul.
type DicomAssociation struct {
	remoteAddr     string
	callingAE      string
	calledAE       string
	maxPDULength   uint32

	mu      sync.Mutex
	client  *scu.Client
	pending []dul.PresentationContextRQ
}

// NewDicomAssociation returns a DicomAssociation configured to connect to
// remoteAddr as callingAE, addressing calledAE.
func NewDicomAssociation(remoteAddr, callingAE, calledAE string, maxPDULength uint32) *DicomAssociation {
	if maxPDULength == 0 {
		maxPDULength = 16384
	}
	return &DicomAssociation{
		remoteAddr:   remoteAddr,
		callingAE:    callingAE,
		calledAE:     calledAE,
		maxPDULength: maxPDULength,
	}
}

// IsOpen implements Association.
func (d *DicomAssociation) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.client != nil && d.client.Association() != nil && d.client.Association().IsOpen()
}

// TransferSyntax implements Association.
func (d *DicomAssociation) TransferSyntax(pcid uint8) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.client == nil || d.client.Association() == nil {
		return "", false
	}
	pc, ok := d.client.Association().GetPresentationContext(pcid)
	if !ok {
		return "", false
	}
	return pc.TransferSyntax, true
}

// PCIDsFor implements Association.
func (d *DicomAssociation) PCIDsFor(cuid string, tsuid string) []uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.client == nil || d.client.Association() == nil {
		return nil
	}
	var out []uint8
	for _, pc := range d.client.Association().PresentationContextsFor(cuid) {
		if tsuid == "" || pc.TransferSyntax == tsuid {
			out = append(out, pc.ID)
		}
	}
	return out
}

// AcceptedTransferSyntax implements Association.
func (d *DicomAssociation) AcceptedTransferSyntax(pcid uint8, tsuid string) bool {
	ts, ok := d.TransferSyntax(pcid)
	return ok && ts == tsuid
}

// RegisterPresentationContexts implements Association.
func (d *DicomAssociation) RegisterPresentationContexts(cuid string, tsuids []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.pending {
		if d.pending[i].AbstractSyntax == cuid {
			// Merge transfer syntaxes into the existing request rather than
			// registering a duplicate abstract syntax.
			for _, ts := range tsuids {
				if !containsString(d.pending[i].TransferSyntaxes, ts) {
					d.pending[i].TransferSyntaxes = append(d.pending[i].TransferSyntaxes, ts)
				}
			}
			return
		}
	}
	d.pending = append(d.pending, dul.PresentationContextRQ{
		ID:               nextOddID(len(d.pending)),
		AbstractSyntax:   cuid,
		TransferSyntaxes: append([]string(nil), tsuids...),
	})
}

// Open implements Association.
func (d *DicomAssociation) Open(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.client != nil && d.client.Association() != nil && d.client.Association().IsOpen() {
		return nil
	}
	client := scu.NewClient(scu.Config{
		CallingAETitle:       d.callingAE,
		CalledAETitle:        d.calledAE,
		RemoteAddr:           d.remoteAddr,
		MaxPDULength:         d.maxPDULength,
		PresentationContexts: d.pending,
	})
	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("open association to %s: %w", d.remoteAddr, err)
	}
	d.client = client
	return nil
}

// Close implements Association.
func (d *DicomAssociation) Close(ctx context.Context, reopen bool) error {
	d.mu.Lock()
	client := d.client
	d.client = nil
	d.mu.Unlock()

	if client == nil {
		return nil
	}
	if err := client.Close(ctx); err != nil {
		return fmt.Errorf("close association: %w", err)
	}
	return nil
}

// Release implements Association.
func (d *DicomAssociation) Release(ctx context.Context) error {
	return d.Close(ctx, false)
}

// CStore implements Association.
func (d *DicomAssociation) CStore(ctx context.Context, cuid, iuid, tsuid string, write func(w io.Writer) error) error {
	d.mu.Lock()
	client := d.client
	d.mu.Unlock()
	if client == nil {
		return fmt.Errorf("%w: association not open", ErrNegotiation)
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return fmt.Errorf("build C-STORE payload: %w", err)
	}
	if err := client.StoreRaw(ctx, cuid, iuid, tsuid, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// nextOddID assigns presentation-context ids from the odd sequence 1, 3, 5,
// ... as required by the DICOM upper-layer protocol (Part 8, Annex B).
func nextOddID(existing int) uint8 {
	return uint8(existing*2 + 1)
}
