package ui

import "strings"

// IconID selects a status bar glyph. Filled and outline variants pair
// up so connectivity state maps to a shape change, not just a color
// change.
type IconID uint8

const (
	IconWifiFilled IconID = iota
	IconWifiOutline
	IconBTFilled
	IconBTOutline
	IconGPSFilled
	IconGPSOutline
)

// IconSize is the square footprint every glyph fits in.
const IconSize int16 = 24

type iconMask struct {
	w, h int16
	rows []uint32
}

// set reports whether the mask pixel at x, y is lit.
func (m iconMask) set(x, y int16) bool {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return false
	}
	return m.rows[y]>>uint(x)&1 == 1
}

func maskOf(id IconID) iconMask {
	if int(id) >= len(masks) {
		return masks[0]
	}
	return masks[id]
}

var masks = [...]iconMask{
	IconWifiFilled:  parseIcon(wifiFilledArt),
	IconWifiOutline: parseIcon(wifiOutlineArt),
	IconBTFilled:    parseIcon(btFilledArt),
	IconBTOutline:   parseIcon(btOutlineArt),
	IconGPSFilled:   parseIcon(gpsFilledArt),
	IconGPSOutline:  parseIcon(gpsOutlineArt),
}

// parseIcon reads row art where '#' is lit. Rows must be equal width
// and at most 32 wide; the art is compile-time data, so malformed
// input is a programming error.
func parseIcon(art string) iconMask {
	lines := strings.Split(strings.Trim(art, "\n"), "\n")
	m := iconMask{h: int16(len(lines))}
	if m.h == 0 {
		panic("icon: empty art")
	}
	m.w = int16(len(lines[0]))
	if m.w == 0 || m.w > 32 {
		panic("icon: bad width")
	}
	m.rows = make([]uint32, m.h)
	for y, line := range lines {
		if int16(len(line)) != m.w {
			panic("icon: ragged art")
		}
		for x := 0; x < len(line); x++ {
			if line[x] == '#' {
				m.rows[y] |= 1 << uint(x)
			}
		}
	}
	return m
}

const wifiFilledArt = `
........................
........................
.....##############.....
...##################...
..####............####..
.###................###.
........................
......############......
.....##############.....
....###..........###....
........................
........########........
.......##########.......
......###......###......
........................
........................
..........####..........
.........######.........
.........######.........
..........####..........
........................
........................
........................
........................`

const wifiOutlineArt = `
........................
........................
.....##############.....
....#..............#....
...#................#...
........................
........................
......############......
.....#............#.....
....#..............#....
........................
........########........
.......#........#.......
......#..........#......
........................
........................
..........####..........
.........#....#.........
.........#....#.........
..........####..........
........................
........................
........................
........................`

const btFilledArt = `
........................
..........##............
..........###...........
..........####..........
..........##.##.........
...###....##..##........
....###...##...##.......
.....###..##..##........
......###.##.##.........
.......######...........
........####............
........####............
.......######...........
......###.##.##.........
.....###..##..##........
....###...##...##.......
...###....##..##........
..........##.##.........
..........####..........
..........###...........
..........##............
........................
........................
........................`

const btOutlineArt = `
........................
...........#............
...........##...........
...........#.#..........
...........#..#.........
....#......#...#........
.....#.....#..#.........
......#....#.#..........
.......#...##...........
........#..#............
.........###............
.........###............
........#..#............
.......#...##...........
......#....#.#..........
.....#.....#..#.........
....#......#...#........
...........#..#.........
...........#.#..........
...........##...........
...........#............
........................
........................
........................`

const gpsFilledArt = `
........................
.........######.........
.......##########.......
......############......
.....##############.....
.....#####....#####.....
....#####......#####....
....#####......#####....
....#####......#####....
.....#####....#####.....
.....##############.....
......############......
......############......
.......##########.......
.......##########.......
........########........
........########........
.........######.........
.........######.........
..........####..........
..........####..........
...........##...........
........................
........................`

const gpsOutlineArt = `
........................
.........######.........
.......##......##.......
......#..........#......
.....#............#.....
.....#....####....#.....
....#....#....#....#....
....#....#....#....#....
....#....#....#....#....
.....#....####....#.....
.....#............#.....
......#..........#......
......#..........#......
.......#........#.......
.......#........#.......
........#......#........
........#......#........
.........#....#.........
.........#....#.........
..........#..#..........
..........#..#..........
...........##...........
........................
........................`
