package flver

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
)

// Game archives ship FLVER files wrapped in DCX containers. Only the
// DFLT (zlib) scheme is handled; EDGE/KRAK streams come from platforms
// this importer does not target.

// IsDCX reports whether the buffer starts with a DCX container header.
func IsDCX(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "DCX\x00"
}

// DecompressDCX unwraps a DCX container and returns the inner file.
func DecompressDCX(data []byte) ([]byte, error) {
	if !IsDCX(data) {
		return nil, fmt.Errorf("dcx: bad magic")
	}
	if len(data) < 0x4C {
		return nil, fmt.Errorf("dcx: truncated header (%d bytes)", len(data))
	}

	// All DCX header fields are big-endian regardless of payload.
	if string(data[0x18:0x1C]) != "DCS\x00" {
		return nil, fmt.Errorf("dcx: missing DCS chunk")
	}
	uncompressedSize := int(binary.BigEndian.Uint32(data[0x1C:]))

	if string(data[0x24:0x28]) != "DCP\x00" {
		return nil, fmt.Errorf("dcx: missing DCP chunk")
	}
	format := string(data[0x28:0x2C])
	if format != "DFLT" {
		return nil, fmt.Errorf("dcx: unsupported compression %q", format)
	}

	dca := bytes.Index(data[0x2C:], []byte("DCA\x00"))
	if dca < 0 {
		return nil, fmt.Errorf("dcx: missing DCA chunk")
	}
	dca += 0x2C
	if dca+8 > len(data) {
		return nil, fmt.Errorf("dcx: truncated DCA chunk")
	}
	payload := data[dca+8:]

	zr, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("dcx: open stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("dcx: decompress: %w", err)
	}
	if uncompressedSize > 0 && len(out) != uncompressedSize {
		return nil, fmt.Errorf("dcx: size mismatch: got %d, header says %d", len(out), uncompressedSize)
	}
	return out, nil
}
