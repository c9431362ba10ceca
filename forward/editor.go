package forward

import (
	"fmt"

	"github.com/go-radx/dicomforward/dicom"
	"github.com/go-radx/dicomforward/dicom/tag"
)

// AttributeEditor is the callable consumed by the editor pipeline (§6):
// apply(dataset, context). Implementations mutate ds in place and may set
// ctx.Abort to signal that the pipeline (and the surrounding transfer)
// should stop.
type AttributeEditor interface {
	Apply(ds *dicom.DataSet, ctx *AttributeEditorContext) error
}

// ApplyEditors runs editors in order against ds, sharing one
// AttributeEditorContext (§4.C). After each editor, iuid is refreshed from
// the dataset's SOPInstanceUID, since an editor may rewrite it. After the
// full list, ctx.Abort is inspected and turned into the matching sentinel
// error.
func ApplyEditors(editors []AttributeEditor, ds *dicom.DataSet, ctx *AttributeEditorContext) (iuid string, err error) {
	iuid = sopInstanceUID(ds)

	for _, editor := range editors {
		if editor == nil {
			continue
		}
		if err := editor.Apply(ds, ctx); err != nil {
			return iuid, fmt.Errorf("apply editor: %w", err)
		}
		iuid = sopInstanceUID(ds)
	}

	switch ctx.Abort {
	case AbortFileException:
		return iuid, fmt.Errorf("%w: %s", ErrFileAbort, ctx.AbortMessage)
	case AbortConnectionException:
		return iuid, fmt.Errorf("%w: %s", ErrConnectionAbort, ctx.AbortMessage)
	default:
		return iuid, nil
	}
}

// sopInstanceUID reads (0008,0018) from ds, returning "" if absent.
func sopInstanceUID(ds *dicom.DataSet) string {
	elem, err := ds.Get(tag.SOPInstanceUID)
	if err != nil {
		return ""
	}
	return elem.Value().String()
}
