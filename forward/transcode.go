package forward

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/go-radx/dicomforward/dicom"
	"github.com/go-radx/dicomforward/dicom/element"
	"github.com/go-radx/dicomforward/dicom/pixel"
	"github.com/go-radx/dicomforward/dicom/tag"
	"github.com/go-radx/dicomforward/dicom/uid"
	"github.com/go-radx/dicomforward/dicom/value"
	"github.com/go-radx/dicomforward/dicom/vr"
)

// Transcode implements component E (§4.D/§4.E): it reads every frame out of
// src, burns in maskArea's rectangles where applicable, re-encodes to
// outTsuid, and rewrites every codec-dependent dataset attribute that no
// longer matches the new encoding (BitsAllocated, BitsStored, HighBit,
// PixelRepresentation, SamplesPerPixel, PhotometricInterpretation,
// PlanarConfiguration, NumberOfFrames, and the Lossy Image Compression
// markers when outTsuid is a lossy transfer syntax).
func Transcode(ds *dicom.DataSet, src BytesWithImageDescriptor, outTsuid string, maskArea *MaskArea) error {
	info := src.ImageDescriptor()
	inTsuid := src.TransferSyntax()

	decoder, err := pixel.GetDecoder(inTsuid)
	if err != nil {
		return fmt.Errorf("transcode: %w", err)
	}

	pixelInfo := toPixelInfo(info, inTsuid)

	var frames [][]byte
	for f := 0; f < info.NumberOfFrames; f++ {
		raw, err := src.Bytes(f)
		if err != nil {
			return fmt.Errorf("transcode: read frame %d: %w", f, err)
		}
		native, err := decoder.Decode(raw, &pixelInfo)
		if err != nil {
			return fmt.Errorf("transcode: decode frame %d: %w", f, err)
		}
		if maskArea != nil {
			native, err = applyMask(native, info, maskArea)
			if err != nil {
				return fmt.Errorf("transcode: mask frame %d: %w", f, err)
			}
		}
		frames = append(frames, native)
	}

	outInfo := pixelInfo
	outInfo.TransferSyntaxUID = outTsuid

	var encoded []byte
	if isNativeTransferSyntax(outTsuid) {
		encoded = bytes.Join(frames, nil)
	} else {
		encoder, err := pixel.GetEncoder(outTsuid)
		if err != nil {
			return fmt.Errorf("transcode: %w", err)
		}
		perFrame := make([][]byte, 0, len(frames))
		frameLen := info.frameLength()
		for i := range frames {
			enc, err := encoder.Encode(frames[i][:frameLen], &outInfo)
			if err != nil {
				return fmt.Errorf("transcode: encode frame %d: %w", i, err)
			}
			perFrame = append(perFrame, enc)
		}
		encoded = encapsulateFrames(perFrame)
	}

	return rewritePixelAttributes(ds, encoded, outInfo, info.NumberOfFrames)
}

func toPixelInfo(info ImageDescriptor, tsuid string) pixel.PixelInfo {
	return pixel.PixelInfo{
		Rows:                      info.Rows,
		Columns:                   info.Columns,
		BitsAllocated:             info.BitsAllocated,
		BitsStored:                info.BitsStored,
		HighBit:                   info.HighBit,
		PixelRepresentation:       info.PixelRepresentation,
		SamplesPerPixel:           info.SamplesPerPixel,
		PhotometricInterpretation: info.PhotometricInterpretation,
		PlanarConfiguration:       info.PlanarConfiguration,
		NumberOfFrames:            1, // decoder operates on one frame's worth of bytes at a time
		TransferSyntaxUID:         tsuid,
	}
}

// applyMask blacks out maskArea's rectangles in one decoded native frame.
// For single-sample 8- or 16-bit grayscale and 3-sample 8-bit RGB, the
// frame is drawn into an image.Image and composited with x/image/draw so
// the same code path covers both color models; other bit depths fall back
// to direct byte zeroing, since they don't map cleanly onto image.Image.
func applyMask(native []byte, info ImageDescriptor, maskArea *MaskArea) ([]byte, error) {
	switch {
	case info.SamplesPerPixel == 1 && info.BitsAllocated == 8:
		img := &image.Gray{Pix: append([]byte(nil), native...), Stride: int(info.Columns), Rect: image.Rect(0, 0, int(info.Columns), int(info.Rows))}
		maskImage(img, maskArea)
		return img.Pix, nil

	case info.SamplesPerPixel == 3 && info.BitsAllocated == 8:
		img := &image.RGBA{Pix: expandToRGBA(native), Stride: int(info.Columns) * 4, Rect: image.Rect(0, 0, int(info.Columns), int(info.Rows))}
		maskImage(img, maskArea)
		return shrinkFromRGBA(img.Pix), nil

	default:
		return maskRawBytes(native, info, maskArea), nil
	}
}

func maskImage(dst draw.Image, maskArea *MaskArea) {
	black := image.NewUniform(color.Black)
	for _, r := range maskArea.Rectangles {
		rect := image.Rect(r.MinX, r.MinY, r.MaxX, r.MaxY)
		xdraw.Draw(dst, rect, black, image.Point{}, xdraw.Src)
	}
}

func expandToRGBA(rgb []byte) []byte {
	out := make([]byte, len(rgb)/3*4)
	for i, j := 0, 0; i+2 < len(rgb); i, j = i+3, j+4 {
		out[j] = rgb[i]
		out[j+1] = rgb[i+1]
		out[j+2] = rgb[i+2]
		out[j+3] = 0xFF
	}
	return out
}

func shrinkFromRGBA(rgba []byte) []byte {
	out := make([]byte, len(rgba)/4*3)
	for i, j := 0, 0; i+3 < len(rgba); i, j = i+4, j+3 {
		out[j] = rgba[i]
		out[j+1] = rgba[i+1]
		out[j+2] = rgba[i+2]
	}
	return out
}

// maskRawBytes zeroes the byte range covered by each rectangle directly,
// used for bit depths/sample counts that don't map onto a stdlib image
// color model (e.g. 16-bit grayscale).
func maskRawBytes(native []byte, info ImageDescriptor, maskArea *MaskArea) []byte {
	out := append([]byte(nil), native...)
	bytesPerSample := (int(info.BitsAllocated) + 7) / 8
	stride := int(info.Columns) * int(info.SamplesPerPixel) * bytesPerSample

	for _, r := range maskArea.Rectangles {
		minY, maxY := clamp(r.MinY, 0, int(info.Rows)), clamp(r.MaxY, 0, int(info.Rows))
		minX, maxX := clamp(r.MinX, 0, int(info.Columns)), clamp(r.MaxX, 0, int(info.Columns))
		for y := minY; y < maxY; y++ {
			rowStart := y*stride + minX*int(info.SamplesPerPixel)*bytesPerSample
			rowEnd := y*stride + maxX*int(info.SamplesPerPixel)*bytesPerSample
			if rowStart < 0 || rowEnd > len(out) {
				continue
			}
			for i := rowStart; i < rowEnd; i++ {
				out[i] = 0
			}
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// encapsulateFrames wraps already-compressed per-frame byte slices in the
// Basic Offset Table + Item framing PS3.5 Annex A.4 requires for
// encapsulated pixel data.
func encapsulateFrames(frames [][]byte) []byte {
	var buf bytes.Buffer

	padded := make([][]byte, len(frames))
	for i, f := range frames {
		if len(f)%2 != 0 {
			f = append(append([]byte(nil), f...), 0x00)
		}
		padded[i] = f
	}

	// Offsets are measured from the first byte of the first fragment
	// item's tag, immediately following the Basic Offset Table item, and
	// include each fragment's 8-byte item header (tag + length).
	bot := make([]byte, 4*len(padded))
	offset := uint32(0)
	for i, f := range padded {
		putUint32LE(bot, i*4, offset)
		offset += 8 + uint32(len(f))
	}
	writeItem(&buf, bot)

	for _, f := range padded {
		writeItem(&buf, f)
	}

	// Sequence delimiter item.
	buf.Write([]byte{0xFE, 0xFF, 0xDD, 0xE0, 0x00, 0x00, 0x00, 0x00})
	return buf.Bytes()
}

func writeItem(buf *bytes.Buffer, data []byte) {
	buf.Write([]byte{0xFE, 0xFF, 0x00, 0xE0})
	length := make([]byte, 4)
	putUint32LE(length, 0, uint32(len(data)))
	buf.Write(length)
	buf.Write(data)
}

func putUint32LE(b []byte, offset int, v uint32) {
	b[offset] = byte(v)
	b[offset+1] = byte(v >> 8)
	b[offset+2] = byte(v >> 16)
	b[offset+3] = byte(v >> 24)
}

// rewritePixelAttributes replaces PixelData with encoded and rewrites every
// codec-dependent attribute §4.E lists as no longer trustworthy once the
// pixel stream has been re-encoded: BitsAllocated, BitsStored, HighBit,
// PixelRepresentation, SamplesPerPixel, PhotometricInterpretation,
// PlanarConfiguration, NumberOfFrames, and (for a lossy output transfer
// syntax) the Lossy Image Compression markers. outInfo is the re-encoded
// stream's own descriptor (outTsuid already folded in by the caller), not
// the pre-transcode one — a transcode that changes bit depth or
// photometric interpretation must not leave the old header tags behind.
func rewritePixelAttributes(ds *dicom.DataSet, encoded []byte, outInfo pixel.PixelInfo, numberOfFrames int) error {
	outTsuid := outInfo.TransferSyntaxUID

	var pixelVR vr.VR
	if outInfo.BitsAllocated > 8 {
		pixelVR = vr.OtherWord
	} else {
		pixelVR = vr.OtherByte
	}
	if !isNativeTransferSyntax(outTsuid) {
		pixelVR = vr.OtherByte
	}

	val, err := value.NewBytesValue(pixelVR, encoded)
	if err != nil {
		return fmt.Errorf("rewrite pixel data: %w", err)
	}
	elem, err := element.NewElement(tag.PixelData, pixelVR, val)
	if err != nil {
		return fmt.Errorf("rewrite pixel data: %w", err)
	}
	if err := ds.Add(elem); err != nil {
		return fmt.Errorf("rewrite pixel data: %w", err)
	}

	for _, set := range []struct {
		t tag.Tag
		v int64
	}{
		{tag.BitsAllocated, int64(outInfo.BitsAllocated)},
		{tag.BitsStored, int64(outInfo.BitsStored)},
		{tag.HighBit, int64(outInfo.HighBit)},
		{tag.PixelRepresentation, int64(outInfo.PixelRepresentation)},
		{tag.SamplesPerPixel, int64(outInfo.SamplesPerPixel)},
		{tag.PlanarConfiguration, int64(outInfo.PlanarConfiguration)},
	} {
		if err := setUint16(ds, set.t, set.v); err != nil {
			return err
		}
	}

	if err := setCodeString(ds, tag.PhotometricInterpretation, outInfo.PhotometricInterpretation); err != nil {
		return err
	}
	if err := setIntegerString(ds, tag.NumberOfFrames, numberOfFrames); err != nil {
		return err
	}

	if isLossyTransferSyntax(outTsuid) {
		if err := setCodeString(ds, tag.LossyImageCompression, "01"); err != nil {
			return err
		}
		if err := setCodeString(ds, tag.LossyImageCompressionMethod, lossyCompressionMethod(outTsuid)); err != nil {
			return err
		}
	}

	return nil
}

// isLossyTransferSyntax reports whether outTsuid encodes pixel data with
// irreversible compression, per PS3.5 Annex A's transfer syntax table. RLE
// Lossless and the JPEG/JPEG2000 "LosslessOnly" variants are excluded.
func isLossyTransferSyntax(outTsuid string) bool {
	switch outTsuid {
	case uid.JPEGBaselineProcess1.String(),
		uid.JPEGExtendedProcess2And4.String(),
		uid.JPEGExtendedProcess3And5.String(),
		uid.JPEGExtendedHierarchicalProcess16And18.String(),
		uid.JPEGExtendedHierarchicalProcess17And19.String(),
		uid.JPEG2000ImageCompression.String(),
		uid.JPEG2000Part2MultiComponentImageCompression.String():
		return true
	default:
		return false
	}
}

// lossyCompressionMethod returns the PS3.3 C.7.6.1.1.5-defined compression
// method string for outTsuid's codec family.
func lossyCompressionMethod(outTsuid string) string {
	switch outTsuid {
	case uid.JPEG2000ImageCompression.String(), uid.JPEG2000Part2MultiComponentImageCompression.String():
		return "ISO_15444_1"
	default:
		return "ISO_10918_1"
	}
}

func setUint16(ds *dicom.DataSet, t tag.Tag, v int64) error {
	val, err := value.NewIntValue(vr.UnsignedShort, []int64{v})
	if err != nil {
		return fmt.Errorf("set %s: %w", t, err)
	}
	elem, err := element.NewElement(t, vr.UnsignedShort, val)
	if err != nil {
		return fmt.Errorf("set %s: %w", t, err)
	}
	if err := ds.Add(elem); err != nil {
		return fmt.Errorf("set %s: %w", t, err)
	}
	return nil
}

func setCodeString(ds *dicom.DataSet, t tag.Tag, s string) error {
	val, err := value.NewStringValue(vr.CodeString, []string{s})
	if err != nil {
		return fmt.Errorf("set %s: %w", t, err)
	}
	elem, err := element.NewElement(t, vr.CodeString, val)
	if err != nil {
		return fmt.Errorf("set %s: %w", t, err)
	}
	if err := ds.Add(elem); err != nil {
		return fmt.Errorf("set %s: %w", t, err)
	}
	return nil
}

func setIntegerString(ds *dicom.DataSet, t tag.Tag, v int) error {
	val, err := value.NewStringValue(vr.IntegerString, []string{fmt.Sprintf("%d", v)})
	if err != nil {
		return fmt.Errorf("set %s: %w", t, err)
	}
	elem, err := element.NewElement(t, vr.IntegerString, val)
	if err != nil {
		return fmt.Errorf("set %s: %w", t, err)
	}
	if err := ds.Add(elem); err != nil {
		return fmt.Errorf("set %s: %w", t, err)
	}
	return nil
}
