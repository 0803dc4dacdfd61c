package matrix

import (
	"fmt"
	"strings"
)

// String renders a preview of at most MaxPrintExtent rows and columns.
// Elided columns are marked with " ..." at the end of each row and elided
// rows with a trailing row of "  ...  " markers. The output is for
// debugging and cannot be parsed back.
func (m *Matrix) String() string {
	rows, cols := m.Rows(), m.Cols()
	mm, nn := min(rows, m.maxPrint), min(cols, m.maxPrint)
	data := m.buf.Live()

	var sb strings.Builder
	if m.name != "" {
		fmt.Fprintf(&sb, "[ %s ] ", m.name)
	}
	if m.IsVector() {
		fmt.Fprintf(&sb, "%d x %d Vector\n", rows, cols)
	} else {
		fmt.Fprintf(&sb, "%d x %d\n", rows, cols)
	}
	for r := 0; r < mm; r++ {
		for c := 0; c < nn; c++ {
			fmt.Fprintf(&sb, "% 6.2f ", data[c*rows+r])
		}
		if cols > nn {
			sb.WriteString(" ...")
		}
		sb.WriteByte('\n')
	}
	if rows > mm {
		sb.WriteString(strings.Repeat("  ...  ", nn))
		sb.WriteByte('\n')
	}
	return sb.String()
}
