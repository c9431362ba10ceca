package forward

import (
	"fmt"
	"io"

	"github.com/go-radx/dicomforward/dicom"
	"github.com/go-radx/dicomforward/dicom/uid"
)

// WritePassThrough copies the inbound instance bytes verbatim to w. This is
// the fast path (§4.F): no editors ran, no transcoding was needed, and the
// outbound transfer syntax equals the inbound one, so the instance body can
// be relayed byte-for-byte.
func WritePassThrough(w io.Writer, data io.Reader) error {
	if _, err := io.Copy(w, data); err != nil {
		return fmt.Errorf("pass-through write: %w", err)
	}
	return nil
}

// WriteParsed serializes ds under outTsuid to w as a DIMSE dataset body
// (§4.F "parsed path"): taken after the editor pipeline has mutated ds, or
// after transcoding has rewritten its pixel data and codec-dependent
// attributes. The result carries no Part 10 preamble or file meta
// information, matching what a C-STORE-RQ data set PDV expects.
func WriteParsed(w io.Writer, ds *dicom.DataSet, outTsuid string) error {
	ts, err := uid.Parse(outTsuid)
	if err != nil {
		return fmt.Errorf("write parsed dataset: %w", err)
	}
	if err := dicom.WriteDataSetBody(w, ds, &ts); err != nil {
		return fmt.Errorf("write parsed dataset: %w", err)
	}
	return nil
}

// WriteParsedFile serializes ds under outTsuid to w as a complete DICOM
// Part 10 instance (preamble, "DICM", file meta information, dataset). STOW-RS
// uploads require a complete instance, not a bare dataset body.
func WriteParsedFile(w io.Writer, ds *dicom.DataSet, outTsuid string) error {
	ts, err := uid.Parse(outTsuid)
	if err != nil {
		return fmt.Errorf("write parsed file: %w", err)
	}
	opts := dicom.WriteOptions{TransferSyntax: &ts}
	if err := dicom.WriteStream(w, ds, opts); err != nil {
		return fmt.Errorf("write parsed file: %w", err)
	}
	return nil
}
