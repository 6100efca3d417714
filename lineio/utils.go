package lineio

const newLineChar = '\n'

// terminated assures correct line termination.  The result will
// always end with newline, but before that there might also be
// something like a semicolon.
func terminated(line string, terminator byte) []byte {
	c := []byte(line)
	if len(c) == 0 {
		return []byte{newLineChar}
	}
	if c[len(c)-1] == newLineChar {
		// Slice it off to avoid confusion; will replace it momentarily.
		c = c[:len(c)-1]
	}
	if terminator > 0 && len(c) > 0 && c[len(c)-1] != terminator {
		c = append(c, terminator)
	}
	// Always, always end with a newLine.
	return append(c, newLineChar)
}
