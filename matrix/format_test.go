package matrix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringSmall(t *testing.T) {
	a := New(2, 2, []float32{1, 3, 2, 4}) // [1 2; 3 4]
	want := "2 x 2\n" +
		"  1.00   2.00 \n" +
		"  3.00   4.00 \n"
	assert.Equal(t, want, a.String())
}

func TestStringNamedVector(t *testing.T) {
	v := New(1, 2, []float32{-1.5, 0})
	v.SetName("w")
	assert.Equal(t, "[ w ] 1 x 2 Vector\n -1.50   0.00 \n", v.String())
}

func TestStringElides(t *testing.T) {
	a := Ones(4, 5)
	a.SetMaxPrintExtent(2)
	lines := strings.Split(strings.TrimRight(a.String(), "\n"), "\n")

	assert.Equal(t, "4 x 5", lines[0])
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(lines[1], " ..."))
	assert.True(t, strings.HasSuffix(lines[2], " ..."))
	assert.Equal(t, strings.Repeat("  ...  ", 2), lines[3])
}

func TestStringEmpty(t *testing.T) {
	assert.Equal(t, "0 x 3\n", Zeros(0, 3).String())
}
