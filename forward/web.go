package forward

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/go-radx/dicomforward/dicom"
	"github.com/go-radx/dicomforward/dicom/uid"
)

// webOutputTransferSyntax implements §4.H's wire-level substitution table
// for STOW-RS destinations: only Implicit VR Little Endian, Explicit VR Big
// Endian, and RLE Lossless are substituted with Explicit VR Little Endian.
// Every other transfer syntax, including the JPEG family, passes through
// unchanged. This substitution is a DICOMweb transport-contract requirement
// independent of whatever native pixel encoders this module happens to
// carry — RLE Lossless is listed in the literal table specifically because
// DICOMweb Store Transaction clients are not required to accept it, not
// because this module lacks an RLE encoder.
func webOutputTransferSyntax(inTsuid string) string {
	switch inTsuid {
	case uid.ImplicitVRLittleEndian.String(), uid.ExplicitVRBigEndian.String(), uid.RLELossless.String():
		return uid.ExplicitVRLittleEndian.String()
	default:
		return inTsuid
	}
}

// uploadWeb wraps write's dataset-body output with a standalone Part 10
// header for (cuid, iuid, outTsuid) and POSTs the resulting instance via
// dest.WebClient, per §4.H: "build file-meta-information for (cuid, iuid,
// outputTsuid) and upload the raw inbound stream under it". write already
// knows how to produce the dataset body (pass-through copy or the parsed
// path's re-encoded body); uploadWeb only supplies the Part 10 wrapper STOW-RS
// requires around it. iuid is the post-edit SOP Instance UID (§3) — an
// editor that rewrote SOPInstanceUID must have that change reflected in the
// file-meta-information, not the inbound params.IUID.
func (c *Controller) uploadWeb(ctx context.Context, dest *ForwardDestination, params *Params, iuid, outTsuid string, write func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := dicom.WriteFileMetaHeader(&buf, params.CUID, iuid, outTsuid); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if err := write(&buf); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if err := dest.WebClient.UploadStream(ctx, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}
