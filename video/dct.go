// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-bink.
//
// go-bink is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-bink is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-bink.  If not, see <https://www.gnu.org/licenses/>.

package video

import (
	"fmt"
	"math"

	"github.com/ZaparooProject/go-bink/internal/bitstream"
)

// scan is the coefficient order of DCT and residue blocks. It walks 2x2
// cells inside 4x4 quadrants.
var scan = [64]uint8{
	0, 1, 8, 9, 2, 3, 10, 11, 4, 5, 12, 13, 6, 7, 14, 15,
	20, 21, 28, 29, 22, 23, 30, 31, 16, 17, 24, 25, 32, 33, 40, 41,
	34, 35, 42, 43, 48, 49, 56, 57, 50, 51, 58, 59, 18, 19, 26, 27,
	36, 37, 44, 45, 38, 39, 46, 47, 52, 53, 60, 61, 54, 55, 62, 63,
}

// NumQuantizers is the number of quantizer levels per table.
const NumQuantizers = 16

// Quantizer step ratios relative to level 0.
var (
	quantNum = [NumQuantizers]int{1, 4, 5, 2, 7, 8, 3, 7, 4, 9, 5, 6, 7, 8, 9, 10}
	quantDen = [NumQuantizers]int{1, 3, 3, 1, 3, 3, 1, 2, 1, 2, 1, 1, 1, 1, 1, 1}
)

// Weighting matrices, in raster order, that seed the dequantization tables.
var (
	intraSeed = [64]float64{
		16, 16, 16, 19, 16, 19, 22, 22,
		22, 22, 26, 24, 26, 22, 22, 27,
		27, 27, 26, 26, 26, 29, 29, 29,
		27, 27, 27, 26, 34, 34, 34, 29,
		29, 29, 27, 27, 37, 34, 34, 32,
		32, 29, 29, 38, 37, 35, 35, 34,
		35, 40, 40, 40, 38, 38, 48, 48,
		46, 46, 58, 56, 56, 69, 69, 83,
	}
	interSeed = [64]float64{
		16, 17, 17, 18, 18, 18, 19, 19,
		19, 19, 20, 20, 20, 20, 20, 21,
		21, 21, 21, 21, 21, 22, 22, 22,
		22, 22, 22, 22, 23, 23, 23, 23,
		23, 23, 23, 23, 24, 24, 24, 25,
		24, 24, 24, 25, 26, 26, 26, 26,
		25, 27, 27, 27, 27, 27, 28, 28,
		28, 28, 30, 30, 30, 31, 31, 33,
	}
)

// Dequantization tables indexed by quantizer and scan position. Entries are
// fixed point with 11 fractional bits and fold in the IDCT input scaling.
var intraQuant, interQuant = buildQuant()

func aanScale(k int) float64 {
	if k == 0 {
		return 1
	}
	return math.Cos(float64(k)*math.Pi/16) * math.Sqrt2
}

func buildQuant() (intra, inter [NumQuantizers][64]uint32) {
	for q := range NumQuantizers {
		ratio := float64(quantNum[q]) / float64(quantDen[q])
		for i, pos := range scan {
			s := aanScale(int(pos>>3)) * aanScale(int(pos&7)) * ratio * 4096
			intra[q][i] = uint32(math.Round(intraSeed[pos] * s))
			inter[q][i] = uint32(math.Round(interSeed[pos] * s))
		}
	}
	return intra, inter
}

// coefLists is the work list shared by the coefficient and residue readers.
// Entries are inserted at both ends, starting from the middle.
type coefLists struct {
	coef  [128]int
	mode  [128]int
	start int
	end   int
}

func (l *coefLists) reset(entries ...[2]int) {
	l.start, l.end = 64, 64
	for _, e := range entries {
		l.coef[l.end], l.mode[l.end] = e[0], e[1]
		l.end++
	}
}

func (l *coefLists) prepend(c, m int) error {
	if l.start == 0 {
		return fmt.Errorf("%w: coefficient list underflow", ErrCorruptBitstream)
	}
	l.start--
	l.coef[l.start], l.mode[l.start] = c, m
	return nil
}

func (l *coefLists) push(c, m int) error {
	if l.end == len(l.coef) {
		return fmt.Errorf("%w: coefficient list overflow", ErrCorruptBitstream)
	}
	l.coef[l.end], l.mode[l.end] = c, m
	l.end++
	return nil
}

func checkCoef(c int) error {
	if c < 0 || c >= 64 {
		return fmt.Errorf("%w: coefficient index %d", ErrCorruptBitstream, c)
	}
	return nil
}

// readCoefValue reads one coefficient of magnitude class bits.
func readCoefValue(r *bitstream.Reader, bits int) (int32, error) {
	if bits == 0 {
		s, err := r.Bit()
		if err != nil {
			return 0, err
		}
		return 1 - int32(s)<<1, nil
	}
	m, err := r.Bits(bits)
	if err != nil {
		return 0, err
	}
	v, err := readSigned(r, int(m|1<<bits))
	return int32(v), err
}

// readDCTCoeffs reads the AC coefficients of a block in bit-plane order and
// returns the quantizer index. Indices of the coefficients set are appended
// to idx.
func readDCTCoeffs(r *bitstream.Reader, l *coefLists, block *[64]int32, idx []int) ([]int, int, error) {
	l.reset([2]int{4, 0}, [2]int{24, 0}, [2]int{44, 0}, [2]int{1, 3}, [2]int{2, 3}, [2]int{3, 3})

	nb, err := r.Bits(4)
	if err != nil {
		return idx, 0, err
	}
	for bits := int(nb) - 1; bits >= 0; bits-- {
		pos := l.start
		for pos < l.end {
			if l.coef[pos]|l.mode[pos] == 0 {
				pos++
				continue
			}
			bit, err := r.Bit()
			if err != nil {
				return idx, 0, err
			}
			if bit == 0 {
				pos++
				continue
			}

			c, mode := l.coef[pos], l.mode[pos]
			switch mode {
			case 0, 2:
				if mode == 0 {
					l.coef[pos], l.mode[pos] = c+4, 1
				} else {
					l.coef[pos], l.mode[pos] = 0, 0
					pos++
				}
				for i := 0; i < 4; i, c = i+1, c+1 {
					if err := checkCoef(c); err != nil {
						return idx, 0, err
					}
					sub, err := r.Bit()
					if err != nil {
						return idx, 0, err
					}
					if sub == 1 {
						if err := l.prepend(c, 3); err != nil {
							return idx, 0, err
						}
						continue
					}
					v, err := readCoefValue(r, bits)
					if err != nil {
						return idx, 0, err
					}
					block[scan[c]] = v
					idx = append(idx, c)
				}
			case 1:
				l.mode[pos] = 2
				for range 3 {
					c += 4
					if err := l.push(c, 2); err != nil {
						return idx, 0, err
					}
				}
			case 3:
				if err := checkCoef(c); err != nil {
					return idx, 0, err
				}
				v, err := readCoefValue(r, bits)
				if err != nil {
					return idx, 0, err
				}
				block[scan[c]] = v
				idx = append(idx, c)
				l.coef[pos], l.mode[pos] = 0, 0
				pos++
			}
		}
	}

	q, err := r.Bits(4)
	if err != nil {
		return idx, 0, err
	}
	return idx, int(q), nil
}

// unquantize scales the DC term and every coefficient listed in idx.
func unquantize(block *[64]int32, quant *[64]uint32, idx []int) {
	block[0] = int32(int64(block[0]) * int64(quant[0]) >> 11)
	for _, i := range idx {
		p := scan[i]
		block[p] = int32(int64(block[p]) * int64(quant[i]) >> 11)
	}
}

// readResidue adds bit-plane refinements to block until masks changes have
// been applied or the planes run out.
func readResidue(r *bitstream.Reader, l *coefLists, block *[64]int32, masks int) error {
	l.reset([2]int{4, 0}, [2]int{24, 0}, [2]int{44, 0}, [2]int{0, 2})

	var nz [64]int
	nzCount := 0

	shift, err := r.Bits(3)
	if err != nil {
		return err
	}
	for mask := int32(1) << shift; mask != 0; mask >>= 1 {
		for _, p := range nz[:nzCount] {
			bit, err := r.Bit()
			if err != nil {
				return err
			}
			if bit == 0 {
				continue
			}
			if block[p] < 0 {
				block[p] -= mask
			} else {
				block[p] += mask
			}
			if masks--; masks < 0 {
				return nil
			}
		}

		pos := l.start
		for pos < l.end {
			if l.coef[pos]|l.mode[pos] == 0 {
				pos++
				continue
			}
			bit, err := r.Bit()
			if err != nil {
				return err
			}
			if bit == 0 {
				pos++
				continue
			}

			c, mode := l.coef[pos], l.mode[pos]
			switch mode {
			case 0, 2:
				if mode == 0 {
					l.coef[pos], l.mode[pos] = c+4, 1
				} else {
					l.coef[pos], l.mode[pos] = 0, 0
					pos++
				}
				for i := 0; i < 4; i, c = i+1, c+1 {
					if err := checkCoef(c); err != nil {
						return err
					}
					sub, err := r.Bit()
					if err != nil {
						return err
					}
					if sub == 1 {
						if err := l.prepend(c, 3); err != nil {
							return err
						}
						continue
					}
					if nzCount == len(nz) {
						return fmt.Errorf("%w: residue coefficient overflow", ErrCorruptBitstream)
					}
					p := int(scan[c])
					nz[nzCount] = p
					nzCount++
					v, err := readSigned(r, int(mask))
					if err != nil {
						return err
					}
					block[p] = int32(v)
					if masks--; masks < 0 {
						return nil
					}
				}
			case 1:
				l.mode[pos] = 2
				for range 3 {
					c += 4
					if err := l.push(c, 2); err != nil {
						return err
					}
				}
			case 3:
				if err := checkCoef(c); err != nil {
					return err
				}
				if nzCount == len(nz) {
					return fmt.Errorf("%w: residue coefficient overflow", ErrCorruptBitstream)
				}
				p := int(scan[c])
				nz[nzCount] = p
				nzCount++
				v, err := readSigned(r, int(mask))
				if err != nil {
					return err
				}
				block[p] = int32(v)
				l.coef[pos], l.mode[pos] = 0, 0
				pos++
				if masks--; masks < 0 {
					return nil
				}
			}
		}
	}
	return nil
}
