package field

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// Raw volume files hold little-endian float32 samples in the same x/y/z
// order as Volume.Data, with no header. Dimensions travel out of band
// (CLI flags, run store). This matches the flat export format used by
// the scanner tooling that produces the field maps.

// ReadRaw loads a raw float32 volume of the given dimensions.
func ReadRaw(path string, nx, ny, nz int) (*Volume, error) {
	v, err := New(nx, ny, nz)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("field: read %s: %w", path, err)
	}
	want := 4 * v.Len()
	if len(raw) != want {
		return nil, fmt.Errorf("field: %s is %d bytes, want %d for %dx%dx%d float32", path, len(raw), want, nx, ny, nz)
	}
	for i := range v.Data {
		bits := binary.LittleEndian.Uint32(raw[4*i:])
		v.Data[i] = float64(math.Float32frombits(bits))
	}
	return v, nil
}

// WriteRaw stores a volume as raw little-endian float32 samples.
func WriteRaw(path string, v *Volume) error {
	raw := make([]byte, 4*len(v.Data))
	for i, s := range v.Data {
		binary.LittleEndian.PutUint32(raw[4*i:], math.Float32bits(float32(s)))
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("field: write %s: %w", path, err)
	}
	return nil
}
