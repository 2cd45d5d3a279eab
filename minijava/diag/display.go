package diag

import (
	"fmt"
	"io"
)

// Display writes each diagnostic followed by the offending source line and a
// caret under the reported column.
func Display(w io.Writer, src string, diags []*Diagnostic) {
	lines := splitLines(src)
	for _, d := range diags {
		fmt.Fprintln(w, d.Error())
		if !d.Pos.IsValid() || d.Pos.Line > len(lines) {
			continue
		}
		line := lines[d.Pos.Line-1]
		fmt.Fprintf(w, "  %s\n", line)
		col := d.Pos.Column
		if col < 1 {
			col = 1
		}
		if col > len(line)+1 {
			col = len(line) + 1
		}
		pad := make([]byte, col-1)
		for i := range pad {
			if line[i] == '\t' {
				pad[i] = '\t'
			} else {
				pad[i] = ' '
			}
		}
		fmt.Fprintf(w, "  %s^\n", pad)
	}
}

// splitLines breaks src where the lexer starts a new line: at \r\n, a lone
// \r or \n.
func splitLines(src string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			lines = append(lines, src[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, src[start:i])
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, src[start:])
}
