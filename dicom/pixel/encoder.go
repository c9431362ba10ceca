package pixel

import (
	"encoding/binary"
	"fmt"
	"sync"
)

// Encoder defines the interface for compressing native pixel data into a
// specific transfer syntax's wire form. It mirrors Decoder so the two
// registries stay symmetric.
//
// Implementations must be safe for concurrent use.
type Encoder interface {
	// Encode compresses native (uncompressed) pixel data.
	Encode(native []byte, info *PixelInfo) ([]byte, error)

	// TransferSyntaxUID returns the transfer syntax UID this encoder produces.
	TransferSyntaxUID() string
}

var (
	encoderRegistry   = make(map[string]Encoder)
	encoderRegistryMu sync.RWMutex
)

// RegisterEncoder registers an encoder for a specific transfer syntax UID.
// If an encoder is already registered for the UID, it is replaced. Safe for
// concurrent use.
func RegisterEncoder(transferSyntaxUID string, encoder Encoder) {
	encoderRegistryMu.Lock()
	defer encoderRegistryMu.Unlock()
	encoderRegistry[transferSyntaxUID] = encoder
}

// GetEncoder retrieves the encoder for a specific transfer syntax UID.
// Returns an error if no encoder is registered for the UID. Safe for
// concurrent use.
func GetEncoder(transferSyntaxUID string) (Encoder, error) {
	encoderRegistryMu.RLock()
	defer encoderRegistryMu.RUnlock()

	encoder, ok := encoderRegistry[transferSyntaxUID]
	if !ok {
		return nil, &TransferSyntaxError{UID: transferSyntaxUID}
	}
	return encoder, nil
}

// ListEncoders returns all registered transfer syntax UIDs. Safe for
// concurrent use.
func ListEncoders() []string {
	encoderRegistryMu.RLock()
	defer encoderRegistryMu.RUnlock()

	uids := make([]string, 0, len(encoderRegistry))
	for uid := range encoderRegistry {
		uids = append(uids, uid)
	}
	return uids
}

// NativeEncoder is a no-op encoder for uncompressed transfer syntaxes: it
// returns the input unchanged.
type NativeEncoder struct{}

// Encode returns native unchanged.
func (e *NativeEncoder) Encode(native []byte, info *PixelInfo) ([]byte, error) {
	return native, nil
}

// TransferSyntaxUID returns an empty string, since native encoding is not
// tied to one specific transfer syntax.
func (e *NativeEncoder) TransferSyntaxUID() string {
	return ""
}

// RLEEncoder implements DICOM RLE Lossless compression (PS3.5 Annex G),
// the encode-side counterpart of RLEDecoder: PackBits applied per
// byte-position segment, segments addressed by the same 64-byte header
// RLEDecoder consumes.
type RLEEncoder struct{}

// Encode compresses native into RLE Lossless encoded pixel data.
func (e *RLEEncoder) Encode(native []byte, info *PixelInfo) ([]byte, error) {
	bytesPerSample := (int(info.BitsAllocated) + 7) / 8
	samplesPerFrame := int(info.Rows) * int(info.Columns) * int(info.SamplesPerPixel)
	numSegments := bytesPerSample

	if numSegments == 0 || numSegments > 15 {
		return nil, &CompressionError{
			TransferSyntaxUID: e.TransferSyntaxUID(),
			Cause:             fmt.Errorf("invalid segment count derived from BitsAllocated: %d", numSegments),
		}
	}
	if len(native) < samplesPerFrame*bytesPerSample {
		return nil, &CompressionError{
			TransferSyntaxUID: e.TransferSyntaxUID(),
			Cause:             fmt.Errorf("native buffer too small: have %d bytes, need %d", len(native), samplesPerFrame*bytesPerSample),
		}
	}

	segments := make([][]byte, numSegments)
	for bytePosition := 0; bytePosition < numSegments; bytePosition++ {
		plane := make([]byte, samplesPerFrame)
		for i := 0; i < samplesPerFrame; i++ {
			plane[i] = native[i*bytesPerSample+bytePosition]
		}
		segments[bytePosition] = encodePackBits(plane)
	}

	header := make([]byte, 64)
	binary.LittleEndian.PutUint32(header[0:4], uint32(numSegments))
	offset := uint32(64)
	for i, seg := range segments {
		binary.LittleEndian.PutUint32(header[4+i*4:8+i*4], offset)
		offset += uint32(len(seg))
	}

	out := make([]byte, 0, offset)
	out = append(out, header...)
	for _, seg := range segments {
		out = append(out, seg...)
	}
	return out, nil
}

// TransferSyntaxUID returns the RLE Lossless transfer syntax UID.
func (e *RLEEncoder) TransferSyntaxUID() string {
	return "1.2.840.10008.1.2.5"
}

// encodePackBits implements the encode side of the PackBits algorithm
// decodePackBits consumes: runs of 3+ identical bytes become a repeat run,
// everything else becomes literal runs of up to 128 bytes.
func encodePackBits(data []byte) []byte {
	var out []byte
	i := 0
	for i < len(data) {
		runLen := 1
		for i+runLen < len(data) && data[i+runLen] == data[i] && runLen < 128 {
			runLen++
		}
		if runLen >= 3 {
			out = append(out, byte(1-runLen), data[i])
			i += runLen
			continue
		}

		litStart := i
		litLen := 0
		for i < len(data) && litLen < 128 {
			lookahead := 1
			for i+lookahead < len(data) && data[i+lookahead] == data[i] && lookahead < 128 {
				lookahead++
			}
			if lookahead >= 3 {
				break
			}
			i++
			litLen++
		}
		out = append(out, byte(litLen-1))
		out = append(out, data[litStart:litStart+litLen]...)
	}
	return out
}

func init() {
	RegisterEncoder("1.2.840.10008.1.2.5", &RLEEncoder{})
}
