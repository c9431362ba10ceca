package forward

import (
	"fmt"

	"github.com/go-radx/dicomforward/dicom"
	"github.com/go-radx/dicomforward/dicom/anonymize"
)

// AnonymizingEditor adapts dicom/anonymize's PS3.15 de-identification
// profiles into a concrete AttributeEditor, so the editor pipeline has a
// real, non-trivial editor alongside the trivial rename/remove editors
// (§12 of SPEC_FULL.md).
type AnonymizingEditor struct {
	Anonymizer *anonymize.Anonymizer
}

// NewAnonymizingEditor builds an AnonymizingEditor for the given profile.
func NewAnonymizingEditor(profile anonymize.Profile) *AnonymizingEditor {
	return &AnonymizingEditor{Anonymizer: anonymize.NewAnonymizer(profile)}
}

// Apply implements AttributeEditor. Anonymizer.Anonymize returns a fresh
// dataset rather than mutating in place, so the result is swapped back into
// ds: every existing tag is cleared and the anonymized elements are merged
// in, leaving ds the receiver editors downstream still hold a reference to.
func (e *AnonymizingEditor) Apply(ds *dicom.DataSet, ctx *AttributeEditorContext) error {
	cleaned, err := e.Anonymizer.Anonymize(ds)
	if err != nil {
		ctx.Abort = AbortFileException
		ctx.AbortMessage = fmt.Sprintf("anonymize: %v", err)
		return nil
	}

	for _, t := range ds.Tags() {
		//nolint:errcheck // Remove only fails for a tag that is not present.
		ds.Remove(t)
	}
	if err := ds.Merge(cleaned); err != nil {
		return fmt.Errorf("anonymize: merge cleaned dataset: %w", err)
	}
	return nil
}
