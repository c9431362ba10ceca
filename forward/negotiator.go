package forward

import "github.com/go-radx/dicomforward/dicom/uid"

// SelectTransferSyntax implements §4.A: given an accepted outbound
// association and the inbound instance, choose an outbound
// presentation-context id.
//
// Algorithm, in order:
//  1. If the inbound pcid is already accepted for the inbound tsuid, return it.
//  2. Otherwise scan presentation contexts advertised for cuid and return
//     the first whose accepted transfer syntax equals tsuid.
//  3. Otherwise scan the same set and return the first accepted as Explicit
//     VR Little Endian.
//
// Returns ok=false when no match; the caller treats this as ErrNegotiation.
func SelectTransferSyntax(assoc Association, params *Params) (pcid uint8, ok bool) {
	if assoc.AcceptedTransferSyntax(params.PCID, params.TSUID) {
		return params.PCID, true
	}

	if ids := assoc.PCIDsFor(params.CUID, params.TSUID); len(ids) > 0 {
		return ids[0], true
	}

	if ids := assoc.PCIDsFor(params.CUID, uid.ExplicitVRLittleEndian.String()); len(ids) > 0 {
		return ids[0], true
	}

	return 0, false
}
