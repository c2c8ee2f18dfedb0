package layout

import "bytes"

var endMarker = []byte("__END__")

// codeLines returns the number of lines that precede the __END__ marker.
func codeLines(lines [][]byte) int {
	for i, l := range lines {
		if bytes.Equal(bytes.TrimSuffix(l, []byte{'\r'}), endMarker) {
			return i
		}
	}
	return len(lines)
}

func isBlank(line []byte) bool {
	return len(bytes.TrimRight(line, " \t\r")) == 0
}
