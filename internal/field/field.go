// Package field provides the 3-D scalar volume type shared by the
// unwrapping core, the diagnostics, and the CLI tools.
//
// A Volume stores its samples as a flat slice ordered x fastest, then y,
// then z, so the flat index of (x,y,z) is x + Nx*(y + Ny*z). All grid
// maths in this module goes through Idx/In so that flat indices and
// coordinates cannot drift apart.
package field

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Volume is a 3-D scalar field over a regular voxel grid.
type Volume struct {
	Nx, Ny, Nz int
	Data       []float64 // len = Nx*Ny*Nz, x fastest-varying
}

// New allocates a zero-filled volume with the given dimensions.
func New(nx, ny, nz int) (*Volume, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("field: invalid dimensions %dx%dx%d", nx, ny, nz)
	}
	return &Volume{
		Nx:   nx,
		Ny:   ny,
		Nz:   nz,
		Data: make([]float64, nx*ny*nz),
	}, nil
}

// FromSlice wraps an existing flat sample slice. The slice is retained,
// not copied; its length must match the dimensions exactly.
func FromSlice(nx, ny, nz int, data []float64) (*Volume, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("field: invalid dimensions %dx%dx%d", nx, ny, nz)
	}
	if len(data) != nx*ny*nz {
		return nil, fmt.Errorf("field: data length %d does not match %dx%dx%d", len(data), nx, ny, nz)
	}
	return &Volume{Nx: nx, Ny: ny, Nz: nz, Data: data}, nil
}

// Len returns the number of voxels.
func (v *Volume) Len() int { return v.Nx * v.Ny * v.Nz }

// Strides returns the per-axis flat-index strides (sx, sy, sz).
func (v *Volume) Strides() (sx, sy, sz int) { return 1, v.Nx, v.Nx * v.Ny }

// Idx computes the flat index of (x, y, z).
func (v *Volume) Idx(x, y, z int) int { return x + v.Nx*(y+v.Ny*z) }

// In reports whether (x, y, z) lies inside the grid.
func (v *Volume) In(x, y, z int) bool {
	return x >= 0 && x < v.Nx && y >= 0 && y < v.Ny && z >= 0 && z < v.Nz
}

// At returns the sample at (x, y, z). Coordinates must be in bounds.
func (v *Volume) At(x, y, z int) float64 { return v.Data[v.Idx(x, y, z)] }

// Set writes the sample at (x, y, z). Coordinates must be in bounds.
func (v *Volume) Set(x, y, z int, s float64) { v.Data[v.Idx(x, y, z)] = s }

// SameShape reports whether two volumes have identical dimensions.
func (v *Volume) SameShape(o *Volume) bool {
	return o != nil && v.Nx == o.Nx && v.Ny == o.Ny && v.Nz == o.Nz
}

// MinMax returns the smallest and largest sample in the volume.
func (v *Volume) MinMax() (min, max float64) {
	return floats.Min(v.Data), floats.Max(v.Data)
}

// Clone returns a deep copy sharing no storage with the receiver.
func (v *Volume) Clone() *Volume {
	data := make([]float64, len(v.Data))
	copy(data, v.Data)
	return &Volume{Nx: v.Nx, Ny: v.Ny, Nz: v.Nz, Data: data}
}
