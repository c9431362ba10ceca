package forward

import (
	"bytes"
	"fmt"

	"github.com/go-radx/dicomforward/dicom"
	"github.com/go-radx/dicomforward/dicom/pixel"
	"github.com/go-radx/dicomforward/dicom/tag"
	"github.com/go-radx/dicomforward/dicom/uid"
)

// ImageDescriptor is derived from a dataset's pixel-related header elements.
type ImageDescriptor struct {
	Rows                      uint16
	Columns                   uint16
	SamplesPerPixel           uint16
	BitsAllocated             uint16
	BitsStored                uint16
	HighBit                   uint16
	PixelRepresentation       uint16
	PhotometricInterpretation string
	PlanarConfiguration       uint16
	NumberOfFrames            int
}

// BytesWithImageDescriptor is the capability object returned by
// imageTranscode (§4.D, §9): a lazy accessor over per-frame pixel bytes.
// Fragment-start positions are memoized on first access.
type BytesWithImageDescriptor interface {
	ImageDescriptor() ImageDescriptor
	TransferSyntax() string
	Bytes(frame int) ([]byte, error)
	PaletteColorLookupTable() (*dicom.DataSet, error)
}

// paletteLUTTags are the PS3.3 C.7.6.3 palette color LUT attributes copied
// verbatim into the dataset PaletteColorLookupTable returns, when present.
var paletteLUTTags = []tag.Tag{
	tag.RedPaletteColorLookupTableDescriptor,
	tag.GreenPaletteColorLookupTableDescriptor,
	tag.BluePaletteColorLookupTableDescriptor,
	tag.RedPaletteColorLookupTableData,
	tag.GreenPaletteColorLookupTableData,
	tag.BluePaletteColorLookupTableData,
	tag.SegmentedRedPaletteColorLookupTableData,
	tag.SegmentedGreenPaletteColorLookupTableData,
	tag.SegmentedBluePaletteColorLookupTableData,
}

// lossyVideoTransferSyntaxes are transfer syntaxes the transcoder declines
// to mask (spec §4.D: "not lossy video").
var lossyVideoTransferSyntaxes = map[string]bool{
	uid.Mpeg2MainProfileMainLevel.String(): true,
	uid.Mpeg2MainProfileHighLevel.String(): true,
}

func isNativeTransferSyntax(tsuid string) bool {
	switch tsuid {
	case uid.ImplicitVRLittleEndian.String(),
		uid.ExplicitVRLittleEndian.String(),
		uid.ExplicitVRBigEndian.String(),
		uid.DeflatedExplicitVRLittleEndian.String():
		return true
	default:
		return false
	}
}

// NeedsTranscode reports whether imageTranscode should run for ds, per
// §4.D: either a mask area is configured and pixel data is present and the
// inbound syntax is not lossy video, or the inbound syntax differs from the
// outbound syntax and the inbound syntax is encapsulated.
func NeedsTranscode(ds *dicom.DataSet, inTsuid, outTsuid string, maskArea *MaskArea) bool {
	hasPixelData := ds.Contains(tag.PixelData)

	if maskArea != nil && hasPixelData && !lossyVideoTransferSyntaxes[inTsuid] {
		return true
	}

	if inTsuid != outTsuid && !isNativeTransferSyntax(inTsuid) {
		return true
	}

	return false
}

// ImageTranscode implements the BytesWithImageDescriptor construction
// described in §4.D. It returns nil, nil when the instance has no pixel
// data at all (callers should have already checked NeedsTranscode).
func ImageTranscode(ds *dicom.DataSet, tsuid string) (BytesWithImageDescriptor, error) {
	if !ds.Contains(tag.PixelData) {
		return nil, nil
	}

	info, err := describeImage(ds)
	if err != nil {
		return nil, fmt.Errorf("describe image: %w", err)
	}

	elem, err := ds.Get(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("get pixel data: %w", err)
	}
	raw := elem.Value().Bytes()

	if isNativeTransferSyntax(tsuid) {
		return &nativeFrameSource{ds: ds, info: info, tsuid: tsuid, raw: raw}, nil
	}

	encap, err := pixel.ParseEncapsulatedPixelData(raw)
	if err != nil {
		return nil, fmt.Errorf("parse encapsulated pixel data: %w", err)
	}

	src := &encapsulatedFrameSource{ds: ds, info: info, tsuid: tsuid, encap: encap}
	if tsuid == uid.RLELossless.String() {
		src.perFragmentFrame = true
	} else if len(encap.BasicOffsetTable.Offsets) == 0 {
		if err := src.scanJPEGFrameStarts(); err != nil {
			return nil, err
		}
	}
	return src, nil
}

func describeImage(ds *dicom.DataSet) (ImageDescriptor, error) {
	rows, err := getUint16(ds, tag.Rows)
	if err != nil {
		return ImageDescriptor{}, err
	}
	columns, err := getUint16(ds, tag.Columns)
	if err != nil {
		return ImageDescriptor{}, err
	}
	samplesPerPixel, err := getUint16WithDefault(ds, tag.SamplesPerPixel, 1)
	if err != nil {
		return ImageDescriptor{}, err
	}
	bitsAllocated, err := getUint16(ds, tag.BitsAllocated)
	if err != nil {
		return ImageDescriptor{}, err
	}
	bitsStored, err := getUint16WithDefault(ds, tag.BitsStored, bitsAllocated)
	if err != nil {
		return ImageDescriptor{}, err
	}
	highBit, err := getUint16WithDefault(ds, tag.HighBit, bitsStored-1)
	if err != nil {
		return ImageDescriptor{}, err
	}
	pixelRepresentation, err := getUint16WithDefault(ds, tag.PixelRepresentation, 0)
	if err != nil {
		return ImageDescriptor{}, err
	}
	planarConfiguration, err := getUint16WithDefault(ds, tag.PlanarConfiguration, 0)
	if err != nil {
		return ImageDescriptor{}, err
	}
	photometric := "MONOCHROME2"
	if elem, err := ds.Get(tag.PhotometricInterpretation); err == nil {
		photometric = elem.Value().String()
	}
	numberOfFrames := 1
	if elem, err := ds.Get(tag.NumberOfFrames); err == nil {
		if n, err := parseIntLoose(elem.Value().String()); err == nil && n > 0 {
			numberOfFrames = n
		}
	}

	return ImageDescriptor{
		Rows:                      rows,
		Columns:                   columns,
		SamplesPerPixel:           samplesPerPixel,
		BitsAllocated:             bitsAllocated,
		BitsStored:                bitsStored,
		HighBit:                   highBit,
		PixelRepresentation:       pixelRepresentation,
		PhotometricInterpretation: photometric,
		PlanarConfiguration:       planarConfiguration,
		NumberOfFrames:            numberOfFrames,
	}, nil
}

// frameLength is the byte length of one native frame: rows * columns *
// samples-per-pixel * bytes-per-sample.
func (i ImageDescriptor) frameLength() int {
	bytesPerSample := (int(i.BitsAllocated) + 7) / 8
	return int(i.Rows) * int(i.Columns) * int(i.SamplesPerPixel) * bytesPerSample
}

// nativeFrameSource implements BytesWithImageDescriptor over a contiguous,
// uncompressed pixel data buffer (§4.D "Native").
type nativeFrameSource struct {
	ds    *dicom.DataSet
	info  ImageDescriptor
	tsuid string
	raw   []byte
}

func (s *nativeFrameSource) ImageDescriptor() ImageDescriptor { return s.info }
func (s *nativeFrameSource) TransferSyntax() string           { return s.tsuid }

func (s *nativeFrameSource) Bytes(frame int) ([]byte, error) {
	l := s.info.frameLength()
	start := frame * l
	end := start + l
	if frame < 0 || end > len(s.raw) {
		return nil, fmt.Errorf("frame %d out of range (frame length %d, buffer %d bytes)", frame, l, len(s.raw))
	}
	return s.raw[start:end], nil
}

func (s *nativeFrameSource) PaletteColorLookupTable() (*dicom.DataSet, error) {
	return extractPaletteLUT(s.ds), nil
}

// encapsulatedFrameSource implements BytesWithImageDescriptor over
// encapsulated (compressed) pixel data fragments (§4.D "Single-frame
// encapsulated", "Multi-frame encapsulated").
type encapsulatedFrameSource struct {
	ds    *dicom.DataSet
	info  ImageDescriptor
	tsuid string
	encap *pixel.EncapsulatedPixelData

	perFragmentFrame bool // RLE Lossless: fragment i is frame i

	startsScanned bool
	frameStarts   []int // memoized JPEG frame-start fragment indices
}

func (s *encapsulatedFrameSource) ImageDescriptor() ImageDescriptor { return s.info }
func (s *encapsulatedFrameSource) TransferSyntax() string           { return s.tsuid }

func (s *encapsulatedFrameSource) PaletteColorLookupTable() (*dicom.DataSet, error) {
	return extractPaletteLUT(s.ds), nil
}

func (s *encapsulatedFrameSource) Bytes(frame int) ([]byte, error) {
	if frame < 0 || frame >= s.info.NumberOfFrames {
		return nil, fmt.Errorf("frame %d out of range (declared %d frames)", frame, s.info.NumberOfFrames)
	}

	// Single-frame encapsulated: concatenate every fragment.
	if s.info.NumberOfFrames == 1 && len(s.encap.BasicOffsetTable.Offsets) == 0 && !s.perFragmentFrame {
		var buf bytes.Buffer
		for _, f := range s.encap.Fragments {
			buf.Write(f.Data)
		}
		return buf.Bytes(), nil
	}

	if s.perFragmentFrame {
		if frame >= len(s.encap.Fragments) {
			return nil, fmt.Errorf("frame %d out of range (have %d fragments)", frame, len(s.encap.Fragments))
		}
		return s.encap.Fragments[frame].Data, nil
	}

	if len(s.frameStarts) > 0 || s.startsScanned {
		return s.bytesFromScannedStarts(frame)
	}

	frags, err := s.encap.GetFrameFragments(frame)
	if err != nil {
		return nil, fmt.Errorf("get frame fragments: %w", err)
	}
	var buf bytes.Buffer
	for _, f := range frags {
		buf.Write(f.Data)
	}
	return buf.Bytes(), nil
}

// scanJPEGFrameStarts implements the JPEG-family fallback when no Basic
// Offset Table is present: fragments whose bytes begin with a JPEG SOI
// marker (0xFFD8) start a new frame; everything up to the next start
// belongs to that frame.
func (s *encapsulatedFrameSource) scanJPEGFrameStarts() error {
	var starts []int
	for i, f := range s.encap.Fragments {
		if len(f.Data) >= 2 && f.Data[0] == 0xFF && f.Data[1] == 0xD8 {
			starts = append(starts, i)
		}
	}
	if len(starts) != s.info.NumberOfFrames {
		return fmt.Errorf("cannot match fragments to frames: found %d SOI starts, declared %d frames",
			len(starts), s.info.NumberOfFrames)
	}
	s.frameStarts = starts
	s.startsScanned = true
	return nil
}

func (s *encapsulatedFrameSource) bytesFromScannedStarts(frame int) ([]byte, error) {
	start := s.frameStarts[frame]
	end := len(s.encap.Fragments)
	if frame+1 < len(s.frameStarts) {
		end = s.frameStarts[frame+1]
	}
	var buf bytes.Buffer
	for i := start; i < end; i++ {
		buf.Write(s.encap.Fragments[i].Data)
	}
	return buf.Bytes(), nil
}

func extractPaletteLUT(ds *dicom.DataSet) *dicom.DataSet {
	lut := dicom.NewDataSet()
	found := false
	for _, t := range paletteLUTTags {
		elem, err := ds.Get(t)
		if err != nil {
			continue
		}
		found = true
		//nolint:errcheck // Element came from a valid dataset; Add only fails on nil.
		lut.Add(elem)
	}
	if !found {
		return nil
	}
	return lut
}
