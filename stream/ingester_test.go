package stream

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/lalg/matrix"
	"github.com/YuminosukeSato/lalg/pkg/errors"
	"github.com/YuminosukeSato/lalg/pkg/log"
)

func quiet() Option { return WithLogger(log.NewTestLogger(log.LevelError)) }

func captureWarnings(t *testing.T) *[]error {
	t.Helper()
	var (
		mu   sync.Mutex
		list []error
	)
	errors.SetZerologWarnFunc(nil)
	errors.SetWarningHandler(func(err error) {
		mu.Lock()
		defer mu.Unlock()
		list = append(list, err)
	})
	t.Cleanup(func() { errors.SetWarningHandler(nil) })
	return &list
}

func TestIngesterTransposesRows(t *testing.T) {
	in := NewIngester(quiet())
	require.NoError(t, in.Push([]float64{1, 2, 3}))
	require.NoError(t, in.Push([]float64{4, 5, 6}))

	m, err := in.End()
	require.NoError(t, err)
	want, err := matrix.FromRows([][]float32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.True(t, m.Equal(want), "%v", m)
}

func TestIngesterGrowsAcrossReallocations(t *testing.T) {
	in := NewIngester(quiet())
	const n = 100
	for i := 0; i < n; i++ {
		require.NoError(t, in.Push([]float64{float64(i), float64(-i)}))
	}
	assert.Equal(t, n, in.Rows())
	assert.Equal(t, 2, in.Cols())

	m, err := in.End()
	require.NoError(t, err)
	require.Equal(t, n, m.Rows())
	for i := 0; i < n; i++ {
		a, _ := m.Get(i, 0)
		b, _ := m.Get(i, 1)
		assert.Equal(t, float32(i), a)
		assert.Equal(t, float32(-i), b)
	}
}

func TestIngesterShortRowsAreZeroFilled(t *testing.T) {
	warnings := captureWarnings(t)
	in := NewIngester(quiet())
	require.NoError(t, in.Push([]float64{1, 2, 3}))
	require.NoError(t, in.Push([]float64{4}))
	require.NoError(t, in.Push([]float64{7, 8, 9, 10}))

	m, err := in.End()
	require.NoError(t, err)
	want, _ := matrix.FromRows([][]float32{{1, 2, 3}, {4, 0, 0}, {7, 8, 9}})
	assert.True(t, m.Equal(want), "%v", m)

	require.Len(t, *warnings, 1)
	var short *errors.ShortRowWarning
	require.True(t, errors.As((*warnings)[0], &short))
	assert.Equal(t, 1, short.Row)
	assert.Equal(t, 3, short.Expected)
	assert.Equal(t, 1, short.Got)
}

func TestIngesterStrictRows(t *testing.T) {
	in := NewIngester(quiet(), WithStrictRows())
	require.NoError(t, in.Push([]float64{1, 2}))
	err := in.Push([]float64{3})
	var shapeErr *errors.ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, 1, in.Rows(), "rejected rows are not stored")
}

func TestIngesterSingleColumnAndRow(t *testing.T) {
	in := NewIngester(quiet())
	for _, v := range []float64{1, 2, 3} {
		require.NoError(t, in.Push([]float64{v}))
	}
	col, err := in.End()
	require.NoError(t, err)
	assert.Equal(t, 3, col.Rows())
	assert.Equal(t, 1, col.Cols())
	assert.Equal(t, []float32{1, 2, 3}, col.RawData())

	in = NewIngester(quiet())
	require.NoError(t, in.Push([]float64{1, 2, 3}))
	row, err := in.End()
	require.NoError(t, err)
	assert.Equal(t, 1, row.Rows())
	assert.Equal(t, []float32{1, 2, 3}, row.RawData())
}

func TestIngesterLifecycleErrors(t *testing.T) {
	in := NewIngester(quiet())
	var vErr *errors.ValidationError
	assert.True(t, errors.As(in.Push(nil), &vErr))

	m, err := in.End()
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())

	assert.True(t, errors.Is(in.Push([]float64{1}), ErrEnded))
	_, err = in.End()
	assert.True(t, errors.Is(err, ErrEnded))
}

func TestReadResolvesFuture(t *testing.T) {
	rows := make(chan []float64)
	f := Read(context.Background(), rows, quiet())
	go func() {
		defer close(rows)
		rows <- []float64{1, 2}
		rows <- []float64{3, 4}
	}()

	m, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 3, 2, 4}, m.RawData())
}

func TestReadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := Read(ctx, make(chan []float64), quiet())
	cancel()

	wait, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	_, err := f.Wait(wait)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCSVRowsIntoRead(t *testing.T) {
	ctx := context.Background()
	src := "a,b,c\n1, 2, 3\n4,5,6\n"
	rows, errs := CSVRows(ctx, strings.NewReader(src), SkipHeader())

	m, err := Read(ctx, rows, quiet()).Wait(ctx)
	require.NoError(t, err)
	require.NoError(t, <-errs)
	want, _ := matrix.FromRows([][]float32{{1, 2, 3}, {4, 5, 6}})
	assert.True(t, m.Equal(want))
}

func TestCSVRowsSemicolon(t *testing.T) {
	ctx := context.Background()
	rows, errs := CSVRows(ctx, strings.NewReader("1;2\n3;4\n"), WithComma(';'))
	m, err := Collect(ctx, rows, quiet())
	require.NoError(t, err)
	require.NoError(t, <-errs)
	assert.Equal(t, []float32{1, 3, 2, 4}, m.RawData())
}

func TestCSVRowsParseError(t *testing.T) {
	ctx := context.Background()
	rows, errs := CSVRows(ctx, strings.NewReader("1,2\n3,x\n"))

	var got [][]float64
	for row := range rows {
		got = append(got, row)
	}
	assert.Equal(t, [][]float64{{1, 2}}, got)

	err := <-errs
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv line 2")
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr))
}
