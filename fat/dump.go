package fat

import "fmt"

// DumpBlock renders a block's contents as a hex+ASCII dump, in the
// style of `xxd`: one row per bytesPerRow bytes, a hex offset prefix,
// and an ASCII gutter with unprintable bytes shown as '.'.
func DumpBlock(b []byte, bytesPerRow int) string {
	if bytesPerRow <= 0 {
		bytesPerRow = 16
	}
	var out string
	numRows := (len(b) + bytesPerRow - 1) / bytesPerRow
	for row := 0; row < numRows; row++ {
		first := row * bytesPerRow
		last := min(first+bytesPerRow, len(b))

		line := fmt.Sprintf("%08x  ", first)
		ascii := make([]byte, 0, bytesPerRow)
		for j := first; j < first+bytesPerRow; j++ {
			if j < last {
				line += fmt.Sprintf("%02x ", b[j])
				if b[j] < 0x20 || b[j] > 0x7e {
					ascii = append(ascii, '.')
				} else {
					ascii = append(ascii, b[j])
				}
			} else {
				line += "   "
			}
		}
		out += line + " " + string(ascii) + "\n"
	}
	return out
}
