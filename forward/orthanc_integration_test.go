package forward_test

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-radx/dicomforward/dicom"
	"github.com/go-radx/dicomforward/dicom/uid"
	"github.com/go-radx/dicomforward/dimse/integration/orthanc"
	"github.com/go-radx/dicomforward/forward"
	"github.com/go-radx/dicomforward/stowrs"
)

// buildTestInstance constructs a minimal CT Image Storage dataset and
// returns its (iuid, cuid, tsuid) plus the serialized dataset body forward
// expects on Params.Data, mirroring the teacher's dimse/integration/orthanc
// test helpers (setSOPClassUID et al.) but producing the bare dataset body
// this package's Controller consumes instead of a full scu.Client.Store
// call.
func buildTestInstance(t *testing.T, iuid string) *bytes.Reader {
	t.Helper()

	ds := dicom.NewDataSet()
	require.NoError(t, ds.SetSOPInstanceUID(iuid))
	require.NoError(t, ds.SetPatientName("ForwardTest^Integration"))
	require.NoError(t, ds.SetPatientID("FWD001"))
	require.NoError(t, ds.SetStudyInstanceUID("1.2.840.113619.2.55.3.999888777.100"))
	require.NoError(t, ds.SetSeriesInstanceUID("1.2.840.113619.2.55.3.999888777.200"))

	ts := uid.ExplicitVRLittleEndian
	var body bytes.Buffer
	require.NoError(t, dicom.WriteDataSetBody(&body, ds, &ts))
	return bytes.NewReader(body.Bytes())
}

// TestForwardController_DualProtocol exercises both outbound transports
// Controller.StoreMultipleDestination supports — DICOM C-STORE and STOW-RS —
// fanned out from a single inbound instance to one Orthanc container,
// extending the teacher's single-protocol orthanc integration test to cover
// the second destination kind this module adds.
func TestForwardController_DualProtocol(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	orth, err := orthanc.StartOrthanc(ctx)
	require.NoError(t, err, "failed to start Orthanc")
	defer orth.Stop(context.Background())

	dicomDest := &forward.ForwardDestination{
		Name:        "orthanc-dicom",
		Kind:        forward.DicomDestinationKind,
		CUID:        uid.CTImageStorage.String(),
		Association: forward.NewDicomAssociation(orth.DICOMAddress(), "TEST_SCU", "ORTHANC", 16384),
	}
	webDest := &forward.ForwardDestination{
		Name: "orthanc-stow",
		Kind: forward.WebDestinationKind,
		CUID: uid.CTImageStorage.String(),
		WebClient: &stowrs.Client{
			BaseURL: orth.HTTPBaseURL() + "/dicom-web/studies",
		},
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	controller := forward.NewController(logger)

	data := buildTestInstance(t, "1.2.840.113619.2.55.3.999888777.1")
	params := &forward.Params{
		IUID:  "1.2.840.113619.2.55.3.999888777.1",
		CUID:  uid.CTImageStorage.String(),
		TSUID: uid.ExplicitVRLittleEndian.String(),
		Data:  data,
	}

	err = controller.StoreMultipleDestination(ctx, []*forward.ForwardDestination{dicomDest, webDest}, params)
	assert.NoError(t, err, "fan-out to both destinations should succeed")

	time.Sleep(time.Second)
	instances, err := orth.GetInstances(ctx)
	require.NoError(t, err, "failed to list Orthanc instances")
	// Both destinations receive the same SOP Instance UID (no rename editor
	// is configured), so Orthanc stores them as a single instance; the
	// assertion is that the upload landed at all via each transport, not a
	// count of two.
	assert.GreaterOrEqual(t, len(instances), 1, "the fanned-out instance should have landed in Orthanc")
}
