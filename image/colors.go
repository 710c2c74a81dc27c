package image

import (
	"image/color"
	"sort"
)

type ColorCount struct {
	Color color.NRGBA
	Count int
}

type ColorCountList []ColorCount

func (ccl ColorCountList) Len() int { return len(ccl) }
func (ccl ColorCountList) Less(i, j int) bool {
	if ccl[i].Count == ccl[j].Count {
		return hex(ccl[i].Color) < hex(ccl[j].Color)
	}
	return ccl[i].Count > ccl[j].Count
}
func (ccl ColorCountList) Swap(i, j int) { ccl[i], ccl[j] = ccl[j], ccl[i] }

// GetColors returns a map of a buffer's opaque colors
// and the number of times each color occurs
func GetColors(b *Buffer) map[color.NRGBA]int {
	m := make(map[color.NRGBA]int)

	for i := 0; i+3 < len(b.Pix); i += 4 {
		if b.Pix[i+3] == 0 {
			continue
		}
		m[color.NRGBA{b.Pix[i], b.Pix[i+1], b.Pix[i+2], 255}]++
	}

	return m
}

// RankColors orders colors by how often they occur, most frequent first.
func RankColors(m map[color.NRGBA]int) ColorCountList {
	cc := make(ColorCountList, len(m))

	i := 0
	for k, v := range m {
		cc[i] = ColorCount{k, v}
		i++
	}

	sort.Sort(cc)
	return cc
}

func hex(c color.NRGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
