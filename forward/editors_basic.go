package forward

import (
	"fmt"

	"github.com/go-radx/dicomforward/dicom"
	"github.com/go-radx/dicomforward/dicom/element"
	"github.com/go-radx/dicomforward/dicom/tag"
	"github.com/go-radx/dicomforward/dicom/value"
	"github.com/go-radx/dicomforward/dicom/vr"
)

// RenameStringEditor replaces the value of a string-valued tag with a fixed
// replacement. This is the trivial per-destination editor the end-to-end
// scenarios describe (e.g. renaming PatientID per destination).
type RenameStringEditor struct {
	Tag         tag.Tag
	VR          vr.VR
	Replacement string
}

// Apply implements AttributeEditor.
func (e *RenameStringEditor) Apply(ds *dicom.DataSet, _ *AttributeEditorContext) error {
	val, err := value.NewStringValue(e.VR, []string{e.Replacement})
	if err != nil {
		return fmt.Errorf("rename %s: %w", e.Tag, err)
	}
	elem, err := element.NewElement(e.Tag, e.VR, val)
	if err != nil {
		return fmt.Errorf("rename %s: %w", e.Tag, err)
	}
	if err := ds.Add(elem); err != nil {
		return fmt.Errorf("rename %s: %w", e.Tag, err)
	}
	return nil
}

// RemoveTagEditor deletes a tag from the dataset, if present.
type RemoveTagEditor struct {
	Tag tag.Tag
}

// Apply implements AttributeEditor.
func (e *RemoveTagEditor) Apply(ds *dicom.DataSet, _ *AttributeEditorContext) error {
	if !ds.Contains(e.Tag) {
		return nil
	}
	if err := ds.Remove(e.Tag); err != nil {
		return fmt.Errorf("remove %s: %w", e.Tag, err)
	}
	return nil
}
