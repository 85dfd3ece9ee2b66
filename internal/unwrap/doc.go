// Package unwrap implements robust region-growing phase unwrapping for
// 3-D field maps, after Cusack & Papadakis (2002).
//
// A wrapped phase volume is resolved outward from a seed voxel by a
// flood fill over the 6-neighbourhood. Expansion order is governed by
// the caller-supplied magnitude volume: voxels are discretised into
// ascending risk bins, and a bin is only drained once every earlier bin
// is empty, so regions far from phase poles resolve before the
// pole-adjacent voxels that could propagate errors. Each voxel is
// unwrapped exactly once, relative to whichever resolved neighbour
// reaches it first; the ascending-bin/FIFO order is therefore part of
// the observable contract and is kept deterministic.
//
// Key types: Params, Result, Stats. Entry point: Unwrap.
package unwrap
