package forward

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/go-radx/dicomforward/dicom"
	"github.com/go-radx/dicomforward/dicom/uid"
)

// Controller is the forward entry point (§4.G): it owns the set of
// outbound destinations an inbound instance fans out to, and a logger used
// for drop/skip decisions that don't carry a per-destination progress sink.
type Controller struct {
	Logger *log.Logger
}

// NewController returns a Controller. A nil logger falls back to
// log.Default().
func NewController(logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{Logger: logger}
}

// StoreMultipleDestination is storeMultipleDestination(sourceNode,
// destinations, params) from §4.G: the single entry point for forwarding
// one inbound instance to one or more outbound destinations.
func (c *Controller) StoreMultipleDestination(ctx context.Context, destinations []*ForwardDestination, params *Params) error {
	if len(destinations) == 0 {
		return fmt.Errorf("%w: no destinations configured", ErrConfiguration)
	}

	if params.CUID == uid.MediaStorageDirectoryStorage.String() {
		c.Logger.Warn("dropping DICOMDIR instance", "iuid", params.IUID)
		return nil
	}

	var survivors []*ForwardDestination
	outTsuids := make(map[*ForwardDestination]string, len(destinations))
	for _, dest := range destinations {
		if err := dest.Validate(); err != nil {
			c.Logger.Warn("dropping misconfigured destination", "destination", dest.Name, "error", err)
			continue
		}
		if dest.Kind != DicomDestinationKind {
			// Web destinations negotiate their own output syntax in §4.H;
			// they always "survive" association preparation since there is
			// no association to prepare.
			survivors = append(survivors, dest)
			outTsuids[dest] = webOutputTransferSyntax(params.TSUID)
			continue
		}

		outTsuid, err := PrepareTransfer(ctx, dest.Association, params.CUID, params.TSUID)
		if err != nil {
			c.Logger.Warn("dropping destination after negotiation failure", "destination", dest.Name, "error", err)
			continue
		}
		survivors = append(survivors, dest)
		outTsuids[dest] = outTsuid
	}

	if len(survivors) == 0 {
		return nil
	}

	if len(survivors) == 1 {
		dest := survivors[0]
		return c.storeOneDestination(ctx, dest, outTsuids[dest], params)
	}

	return c.storeFanOut(ctx, survivors, outTsuids, params)
}

// storeOneDestination implements the single-destination path of §4.G: parse
// only if an editor, mask, or transcode requires it, otherwise pass
// through.
func (c *Controller) storeOneDestination(ctx context.Context, dest *ForwardDestination, outTsuid string, params *Params) error {
	needsParse := len(dest.Editors) > 0 || dest.MaskArea != nil || outTsuid != params.TSUID

	var iuid string
	var err error
	if !needsParse {
		iuid, err = c.sendPassThrough(ctx, dest, outTsuid, params)
	} else {
		iuid, err = c.sendParsed(ctx, dest, outTsuid, params, nil)
	}

	c.reportOutcome(dest, iuid, params.CUID, err, 0)
	return c.abortIfFatal(ctx, params, err)
}

// storeFanOut implements the multi-destination path of §4.G: params.Data is
// parsed exactly once, into `copy`. `transfer` applies the first
// destination's editors to `copy` and writes it; each subsequent
// `transferOther` deep-copies that same post-edit `copy` and applies its
// own editors to the duplicate — not a fresh parse — so destination 2+ see
// destination 1's edits as their starting point, per the data-model
// invariant that "the first destination's post-edit dataset copy is the
// one replicated to subsequent destinations".
func (c *Controller) storeFanOut(ctx context.Context, destinations []*ForwardDestination, outTsuids map[*ForwardDestination]string, params *Params) error {
	working, err := dicom.ParseDataSetBody(params.Data, params.TSUID)
	if err != nil {
		return fmt.Errorf("fan out: parse inbound instance: %w", err)
	}

	first := destinations[0]
	iuid, editErr := c.editDataSet(first, working)
	copyDS := working.Copy()

	writeErr := editErr
	if editErr == nil {
		writeErr = c.transcodeAndWrite(ctx, first, outTsuids[first], params, working, iuid)
	}
	c.reportOutcome(first, iuid, params.CUID, writeErr, len(destinations)-1)
	if err := c.abortIfFatal(ctx, params, writeErr); err != nil {
		return err
	}

	for i := 1; i < len(destinations); i++ {
		dest := destinations[i]
		duplicate := copyDS.Copy()

		iuid, editErr := c.editDataSet(dest, duplicate)
		writeErr := editErr
		if editErr == nil {
			writeErr = c.transcodeAndWrite(ctx, dest, outTsuids[dest], params, duplicate, iuid)
		}
		c.reportOutcome(dest, iuid, params.CUID, writeErr, len(destinations)-i-1)
		if err := c.abortIfFatal(ctx, params, writeErr); err != nil {
			return err
		}
	}
	return nil
}

// sendPassThrough relays params.Data verbatim (§4.F pass-through path). No
// dataset is parsed, so the published iuid is necessarily params.IUID.
func (c *Controller) sendPassThrough(ctx context.Context, dest *ForwardDestination, outTsuid string, params *Params) (string, error) {
	write := func(w io.Writer) error { return WritePassThrough(w, params.Data) }
	return params.IUID, c.dispatch(ctx, dest, outTsuid, params, params.IUID, write)
}

// sendParsed parses params.Data (or reuses ds, when the caller already has
// one) and fully applies the parsed path for one destination: edit,
// transcode if needed, write (§4.F).
func (c *Controller) sendParsed(ctx context.Context, dest *ForwardDestination, outTsuid string, params *Params, ds *dicom.DataSet) (string, error) {
	if ds == nil {
		parsed, err := dicom.ParseDataSetBody(params.Data, params.TSUID)
		if err != nil {
			return params.IUID, fmt.Errorf("parse inbound instance: %w", err)
		}
		ds = parsed
	}

	iuid, err := c.editDataSet(dest, ds)
	if err != nil {
		return iuid, err
	}
	return iuid, c.transcodeAndWrite(ctx, dest, outTsuid, params, ds, iuid)
}

// editDataSet applies dest's editor chain to ds in place (§4.C).
func (c *Controller) editDataSet(dest *ForwardDestination, ds *dicom.DataSet) (string, error) {
	editCtx := &AttributeEditorContext{MaskArea: dest.MaskArea}
	return ApplyEditors(dest.Editors, ds, editCtx)
}

// transcodeAndWrite transcodes ds if needed and dispatches it to dest
// (§4.D/§4.E/§4.F parsed path). iuid is the post-edit SOP Instance UID
// (§3: the published iuid equals the SOPInstanceUID of the final dataset
// written, not the inbound one) and is forwarded to dispatch rather than
// re-read from params.
func (c *Controller) transcodeAndWrite(ctx context.Context, dest *ForwardDestination, outTsuid string, params *Params, ds *dicom.DataSet, iuid string) error {
	if NeedsTranscode(ds, params.TSUID, outTsuid, dest.MaskArea) {
		src, err := ImageTranscode(ds, params.TSUID)
		if err != nil {
			return fmt.Errorf("prepare transcode: %w", err)
		}
		if src != nil {
			if err := Transcode(ds, src, outTsuid, dest.MaskArea); err != nil {
				return fmt.Errorf("transcode: %w", err)
			}
		}
	}

	write := func(w io.Writer) error { return WriteParsed(w, ds, outTsuid) }
	return c.dispatch(ctx, dest, outTsuid, params, iuid, write)
}

// dispatch sends the already-built payload to dest over whichever
// transport it wraps. iuid is the SOP Instance UID to publish in the
// outbound command/file-meta-information — the post-edit value, which may
// differ from params.IUID when an editor rewrote SOPInstanceUID.
func (c *Controller) dispatch(ctx context.Context, dest *ForwardDestination, outTsuid string, params *Params, iuid string, write func(w io.Writer) error) error {
	switch dest.Kind {
	case DicomDestinationKind:
		if err := dest.Association.CStore(ctx, params.CUID, iuid, outTsuid, write); err != nil {
			return fmt.Errorf("%w: %v", ErrTransport, err)
		}
		return nil
	case WebDestinationKind:
		return c.uploadWeb(ctx, dest, params, iuid, outTsuid, write)
	default:
		return fmt.Errorf("%w: unknown destination kind", ErrConfiguration)
	}
}

func (c *Controller) reportOutcome(dest *ForwardDestination, iuid, cuid string, err error, remaining int) {
	if err == nil {
		dest.notify(TransferSuccess, iuid, cuid, 0x0000, ProgressCompleted, remaining)
		return
	}
	dest.notify(TransferProcessingFailure, iuid, cuid, 0x0110, ProgressFailed, remaining)
}

// abortIfFatal turns a per-file abort into a nil error (the transfer failed
// but forwarding overall continues). A connection-fatal error additionally
// releases the inbound association (§4.C, §4.G: "CONNECTION_EXCEPTION:
// release the inbound association ... rethrow") before propagating, so the
// caller can halt further destinations.
func (c *Controller) abortIfFatal(ctx context.Context, params *Params, err error) error {
	if !isConnectionFatal(err) {
		// Per-file failures (ErrFileAbort, transport/negotiation errors for a
		// single destination) are reported via progress, not returned.
		return nil
	}
	if params.Inbound != nil {
		if relErr := params.Inbound.Release(ctx); relErr != nil {
			c.Logger.Warn("failed to release inbound association after connection abort", "error", relErr)
		}
	}
	return err
}

func isConnectionFatal(err error) bool {
	return errors.Is(err, ErrConnectionAbort)
}
