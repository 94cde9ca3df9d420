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

// NumRunPatterns is the number of scan orders selectable by run blocks.
const NumRunPatterns = 16

// runPatterns lists, per pattern, the raster positions of an 8x8 block in
// the order run blocks fill them.
var runPatterns = [NumRunPatterns][64]uint8{
	{
		0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38,
		0x39, 0x31, 0x29, 0x21, 0x19, 0x11, 0x09, 0x01,
		0x02, 0x0A, 0x12, 0x1A, 0x22, 0x2A, 0x32, 0x3A,
		0x3B, 0x33, 0x2B, 0x23, 0x1B, 0x13, 0x0B, 0x03,
		0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C,
		0x3D, 0x35, 0x2D, 0x25, 0x1D, 0x15, 0x0D, 0x05,
		0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E,
		0x3F, 0x37, 0x2F, 0x27, 0x1F, 0x17, 0x0F, 0x07,
	},
	{
		0x3B, 0x3A, 0x39, 0x38, 0x30, 0x31, 0x32, 0x33,
		0x2B, 0x2A, 0x29, 0x28, 0x20, 0x21, 0x22, 0x23,
		0x1B, 0x1A, 0x19, 0x18, 0x10, 0x11, 0x12, 0x13,
		0x0B, 0x0A, 0x09, 0x08, 0x00, 0x01, 0x02, 0x03,
		0x04, 0x05, 0x06, 0x07, 0x0F, 0x0E, 0x0D, 0x0C,
		0x14, 0x15, 0x16, 0x17, 0x1F, 0x1E, 0x1D, 0x1C,
		0x24, 0x25, 0x26, 0x27, 0x2F, 0x2E, 0x2D, 0x2C,
		0x34, 0x35, 0x36, 0x37, 0x3F, 0x3E, 0x3D, 0x3C,
	},
	{
		0x19, 0x11, 0x12, 0x1A, 0x1B, 0x13, 0x0B, 0x03,
		0x02, 0x0A, 0x09, 0x01, 0x00, 0x08, 0x10, 0x18,
		0x20, 0x28, 0x30, 0x38, 0x39, 0x31, 0x29, 0x2A,
		0x32, 0x3A, 0x3B, 0x33, 0x2B, 0x23, 0x22, 0x21,
		0x1D, 0x15, 0x16, 0x1E, 0x1F, 0x17, 0x0F, 0x07,
		0x06, 0x0E, 0x0D, 0x05, 0x04, 0x0C, 0x14, 0x1C,
		0x24, 0x2C, 0x34, 0x3C, 0x3D, 0x35, 0x2D, 0x2E,
		0x36, 0x3E, 0x3F, 0x37, 0x2F, 0x27, 0x26, 0x25,
	},
	{
		0x03, 0x0B, 0x02, 0x0A, 0x01, 0x09, 0x00, 0x08,
		0x10, 0x18, 0x11, 0x19, 0x12, 0x1A, 0x13, 0x1B,
		0x23, 0x2B, 0x22, 0x2A, 0x21, 0x29, 0x20, 0x28,
		0x30, 0x38, 0x31, 0x39, 0x32, 0x3A, 0x33, 0x3B,
		0x3C, 0x34, 0x3D, 0x35, 0x3E, 0x36, 0x3F, 0x37,
		0x2F, 0x27, 0x2E, 0x26, 0x2D, 0x25, 0x2C, 0x24,
		0x1C, 0x14, 0x1D, 0x15, 0x1E, 0x16, 0x1F, 0x17,
		0x0F, 0x07, 0x0E, 0x06, 0x0D, 0x05, 0x0C, 0x04,
	},
	{
		0x18, 0x19, 0x10, 0x11, 0x08, 0x09, 0x00, 0x01,
		0x02, 0x03, 0x0A, 0x0B, 0x12, 0x13, 0x1A, 0x1B,
		0x1C, 0x1D, 0x14, 0x15, 0x0C, 0x0D, 0x04, 0x05,
		0x06, 0x07, 0x0E, 0x0F, 0x16, 0x17, 0x1E, 0x1F,
		0x27, 0x26, 0x2F, 0x2E, 0x37, 0x36, 0x3F, 0x3E,
		0x3D, 0x3C, 0x35, 0x34, 0x2D, 0x2C, 0x25, 0x24,
		0x23, 0x22, 0x2B, 0x2A, 0x33, 0x32, 0x3B, 0x3A,
		0x39, 0x38, 0x31, 0x30, 0x29, 0x28, 0x21, 0x20,
	},
	{
		0x00, 0x01, 0x02, 0x03, 0x08, 0x09, 0x0A, 0x0B,
		0x10, 0x11, 0x12, 0x13, 0x18, 0x19, 0x1A, 0x1B,
		0x20, 0x21, 0x22, 0x23, 0x28, 0x29, 0x2A, 0x2B,
		0x30, 0x31, 0x32, 0x33, 0x38, 0x39, 0x3A, 0x3B,
		0x04, 0x05, 0x06, 0x07, 0x0C, 0x0D, 0x0E, 0x0F,
		0x14, 0x15, 0x16, 0x17, 0x1C, 0x1D, 0x1E, 0x1F,
		0x24, 0x25, 0x26, 0x27, 0x2C, 0x2D, 0x2E, 0x2F,
		0x34, 0x35, 0x36, 0x37, 0x3C, 0x3D, 0x3E, 0x3F,
	},
	{
		0x06, 0x07, 0x0F, 0x0E, 0x0D, 0x05, 0x0C, 0x04,
		0x03, 0x0B, 0x02, 0x0A, 0x09, 0x01, 0x00, 0x08,
		0x10, 0x18, 0x11, 0x19, 0x12, 0x1A, 0x13, 0x1B,
		0x14, 0x1C, 0x15, 0x1D, 0x16, 0x1E, 0x17, 0x1F,
		0x27, 0x2F, 0x26, 0x2E, 0x25, 0x2D, 0x24, 0x2C,
		0x23, 0x2B, 0x22, 0x2A, 0x21, 0x29, 0x20, 0x28,
		0x31, 0x30, 0x38, 0x39, 0x3A, 0x32, 0x3B, 0x33,
		0x3C, 0x34, 0x3D, 0x35, 0x36, 0x37, 0x3F, 0x3E,
	},
	{
		0x00, 0x08, 0x09, 0x01, 0x02, 0x03, 0x0B, 0x0A,
		0x12, 0x13, 0x1B, 0x1A, 0x19, 0x11, 0x10, 0x18,
		0x20, 0x28, 0x29, 0x21, 0x22, 0x23, 0x2B, 0x2A,
		0x32, 0x31, 0x30, 0x38, 0x39, 0x3A, 0x3B, 0x33,
		0x34, 0x3C, 0x3D, 0x3E, 0x3F, 0x37, 0x36, 0x35,
		0x2D, 0x2C, 0x24, 0x25, 0x26, 0x2E, 0x2F, 0x27,
		0x1F, 0x17, 0x16, 0x1E, 0x1D, 0x1C, 0x14, 0x15,
		0x0D, 0x0C, 0x04, 0x05, 0x06, 0x0E, 0x0F, 0x07,
	},
	{
		0x18, 0x10, 0x08, 0x00, 0x01, 0x02, 0x03, 0x0B,
		0x13, 0x1B, 0x1A, 0x19, 0x11, 0x0A, 0x09, 0x12,
		0x1C, 0x14, 0x0C, 0x04, 0x05, 0x06, 0x07, 0x0F,
		0x17, 0x1F, 0x1E, 0x1D, 0x15, 0x0E, 0x0D, 0x16,
		0x3C, 0x34, 0x2C, 0x24, 0x25, 0x26, 0x27, 0x2F,
		0x37, 0x3F, 0x3E, 0x3D, 0x35, 0x2E, 0x2D, 0x36,
		0x38, 0x30, 0x28, 0x20, 0x21, 0x22, 0x23, 0x2B,
		0x33, 0x3B, 0x3A, 0x39, 0x31, 0x2A, 0x29, 0x32,
	},
	{
		0x00, 0x08, 0x09, 0x01, 0x02, 0x0A, 0x12, 0x11,
		0x10, 0x18, 0x19, 0x1A, 0x1B, 0x13, 0x0B, 0x03,
		0x04, 0x05, 0x0D, 0x0C, 0x14, 0x1C, 0x1D, 0x15,
		0x16, 0x1E, 0x1F, 0x17, 0x0F, 0x0E, 0x06, 0x07,
		0x27, 0x26, 0x2E, 0x2F, 0x37, 0x3F, 0x3E, 0x36,
		0x35, 0x3D, 0x3C, 0x34, 0x2C, 0x2D, 0x25, 0x24,
		0x23, 0x22, 0x2A, 0x2B, 0x33, 0x3B, 0x3A, 0x32,
		0x31, 0x39, 0x38, 0x30, 0x28, 0x29, 0x21, 0x20,
	},
	{
		0x00, 0x08, 0x01, 0x09, 0x02, 0x0A, 0x03, 0x0B,
		0x13, 0x1B, 0x12, 0x1A, 0x11, 0x19, 0x10, 0x18,
		0x20, 0x28, 0x21, 0x29, 0x22, 0x2A, 0x23, 0x2B,
		0x33, 0x3B, 0x32, 0x3A, 0x31, 0x39, 0x30, 0x38,
		0x3C, 0x34, 0x3D, 0x35, 0x3E, 0x36, 0x3F, 0x37,
		0x2F, 0x27, 0x2E, 0x26, 0x2D, 0x25, 0x2C, 0x24,
		0x1F, 0x17, 0x1E, 0x16, 0x1D, 0x15, 0x1C, 0x14,
		0x0C, 0x04, 0x0D, 0x05, 0x0E, 0x06, 0x0F, 0x07,
	},
	{
		0x00, 0x08, 0x10, 0x18, 0x19, 0x1A, 0x1B, 0x13,
		0x0B, 0x03, 0x02, 0x01, 0x09, 0x11, 0x12, 0x0A,
		0x04, 0x0C, 0x14, 0x1C, 0x1D, 0x1E, 0x1F, 0x17,
		0x0F, 0x07, 0x06, 0x05, 0x0D, 0x15, 0x16, 0x0E,
		0x24, 0x2C, 0x34, 0x3C, 0x3D, 0x3E, 0x3F, 0x37,
		0x2F, 0x27, 0x26, 0x25, 0x2D, 0x35, 0x36, 0x2E,
		0x20, 0x28, 0x30, 0x38, 0x39, 0x3A, 0x3B, 0x33,
		0x2B, 0x23, 0x22, 0x21, 0x29, 0x31, 0x32, 0x2A,
	},
	{
		0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38,
		0x39, 0x3A, 0x3B, 0x3C, 0x3D, 0x3E, 0x3F, 0x37,
		0x2F, 0x27, 0x1F, 0x17, 0x0F, 0x07, 0x06, 0x05,
		0x04, 0x03, 0x02, 0x01, 0x09, 0x11, 0x19, 0x21,
		0x29, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x2E,
		0x26, 0x1E, 0x16, 0x0E, 0x0D, 0x0C, 0x0B, 0x0A,
		0x12, 0x1A, 0x22, 0x2A, 0x2B, 0x2C, 0x2D, 0x25,
		0x1D, 0x15, 0x14, 0x13, 0x1B, 0x23, 0x24, 0x1C,
	},
	{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x0F, 0x0E, 0x0D, 0x0C, 0x0B, 0x0A, 0x09, 0x08,
		0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
		0x1F, 0x1E, 0x1D, 0x1C, 0x1B, 0x1A, 0x19, 0x18,
		0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27,
		0x2F, 0x2E, 0x2D, 0x2C, 0x2B, 0x2A, 0x29, 0x28,
		0x30, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37,
		0x3F, 0x3E, 0x3D, 0x3C, 0x3B, 0x3A, 0x39, 0x38,
	},
	{
		0x00, 0x01, 0x08, 0x09, 0x10, 0x11, 0x18, 0x19,
		0x20, 0x21, 0x28, 0x29, 0x30, 0x31, 0x38, 0x39,
		0x3A, 0x3B, 0x32, 0x33, 0x2A, 0x2B, 0x22, 0x23,
		0x1A, 0x1B, 0x12, 0x13, 0x0A, 0x0B, 0x02, 0x03,
		0x04, 0x05, 0x0C, 0x0D, 0x14, 0x15, 0x1C, 0x1D,
		0x24, 0x25, 0x2C, 0x2D, 0x34, 0x35, 0x3C, 0x3D,
		0x3E, 0x3F, 0x36, 0x37, 0x2E, 0x2F, 0x26, 0x27,
		0x1E, 0x1F, 0x16, 0x17, 0x0E, 0x0F, 0x06, 0x07,
	},
	{
		0x00, 0x01, 0x08, 0x09, 0x02, 0x03, 0x0A, 0x0B,
		0x10, 0x11, 0x18, 0x19, 0x12, 0x13, 0x1A, 0x1B,
		0x04, 0x05, 0x0C, 0x0D, 0x06, 0x07, 0x0E, 0x0F,
		0x14, 0x15, 0x1C, 0x1D, 0x16, 0x17, 0x1E, 0x1F,
		0x20, 0x21, 0x28, 0x29, 0x22, 0x23, 0x2A, 0x2B,
		0x30, 0x31, 0x38, 0x39, 0x32, 0x33, 0x3A, 0x3B,
		0x24, 0x25, 0x2C, 0x2D, 0x26, 0x27, 0x2E, 0x2F,
		0x34, 0x35, 0x3C, 0x3D, 0x36, 0x37, 0x3E, 0x3F,
	},
}
