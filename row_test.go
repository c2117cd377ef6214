package sqlet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRow() Row {
	return Row{
		values: []Value{Integer(5), Float(2.5), Text("hola"), Blob([]byte("raw")), Null()},
		index:  map[string]int{"n": 0, "f": 1, "t": 2, "b": 3, "missing_value": 4},
	}
}

func TestExtraction(t *testing.T) {
	row := testRow()

	t.Run("AcceptedTags", func(t *testing.T) {
		n, err := TryGet[int64](row, "n")
		require.NoError(t, err)
		assert.Equal(t, int64(5), n)

		f, err := TryGet[float64](row, "f")
		require.NoError(t, err)
		assert.Equal(t, 2.5, f)

		s, err := TryGet[string](row, "t")
		require.NoError(t, err)
		assert.Equal(t, "hola", s)

		b, err := TryGet[[]byte](row, "b")
		require.NoError(t, err)
		assert.Equal(t, []byte("raw"), b)
	})

	t.Run("IdentityAcceptsEveryTag", func(t *testing.T) {
		for name := range row.index {
			v, err := TryGet[Value](row, name)
			require.NoError(t, err)
			assert.Equal(t, row.Value(row.index[name]), v)
		}
	})

	t.Run("MismatchedTagIsAbsentNotZero", func(t *testing.T) {
		_, err := TryGet[int64](row, "t")
		var convErr *ConversionError
		require.True(t, errors.As(err, &convErr))
		assert.Equal(t, "t", convErr.Column)

		_, err = TryGet[string](row, "n")
		assert.Error(t, err)

		_, err = TryGet[float64](row, "n")
		assert.Error(t, err, "INTEGER does not silently widen to float64")

		_, err = TryGet[[]byte](row, "t")
		assert.Error(t, err)
	})

	t.Run("NullConvertsToNothingNonNullable", func(t *testing.T) {
		_, err := TryGet[int64](row, "missing_value")
		assert.Error(t, err)
		_, err = TryGet[string](row, "missing_value")
		assert.Error(t, err)
	})

	t.Run("NullableAlwaysAcceptsNull", func(t *testing.T) {
		n, err := TryGet[*int64](row, "missing_value")
		require.NoError(t, err)
		assert.Nil(t, n)

		s, err := TryGet[*string](row, "missing_value")
		require.NoError(t, err)
		assert.Nil(t, s)

		v, err := TryGet[*Value](row, "missing_value")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("NullableDelegatesForNonNull", func(t *testing.T) {
		n, err := TryGet[*int64](row, "n")
		require.NoError(t, err)
		require.NotNil(t, n)
		assert.Equal(t, int64(5), *n)

		// The inner conversion still rejects mismatched tags.
		_, err = TryGet[*int64](row, "t")
		assert.Error(t, err)
	})
}

func TestRowAccess(t *testing.T) {
	row := testRow()

	t.Run("TryGetUnknownColumnNamesTheSelector", func(t *testing.T) {
		_, err := TryGet[int64](row, "nonexistent_column")
		var convErr *ConversionError
		require.True(t, errors.As(err, &convErr))
		assert.Equal(t, "nonexistent_column", convErr.Column)
		assert.Contains(t, convErr.Error(), "nonexistent_column")
	})

	t.Run("TryGetOutOfRangePosition", func(t *testing.T) {
		_, err := TryGet[int64](row, 99)
		var convErr *ConversionError
		require.True(t, errors.As(err, &convErr))
		assert.Equal(t, "99", convErr.Column)
	})

	t.Run("GetPanicsOnMisuse", func(t *testing.T) {
		assert.Panics(t, func() { Get[int64](row, "nonexistent_column") })
		assert.Panics(t, func() { Get[int64](row, "t") })
		assert.NotPanics(t, func() {
			assert.Equal(t, int64(5), Get[int64](row, "n"))
		})
	})

	t.Run("ValuePanicsOutOfRange", func(t *testing.T) {
		assert.Panics(t, func() { row.Value(99) })
		assert.Equal(t, Integer(5), row.Value(0))
	})

	t.Run("Len", func(t *testing.T) {
		assert.Equal(t, 5, row.Len())
	})
}
