package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depscreen/internal/dataset"
)

// idTable builds an n-row table whose single feature is the row index, so
// partition membership can be tracked exactly.
func idTable(t *testing.T, n int) *dataset.Table {
	t.Helper()
	cols := []dataset.Column{
		{Name: "id", Kind: dataset.KindContinuous},
		{Name: "depression", Kind: dataset.KindLabel},
	}
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = []float64{float64(i), float64(i % 2)}
	}
	table, err := dataset.NewTable(cols, rows)
	require.NoError(t, err)
	return table
}

func ids(t *testing.T, table *dataset.Table) map[float64]bool {
	t.Helper()
	j, ok := table.ColumnIndex("id")
	require.True(t, ok)
	out := make(map[float64]bool, table.NumRows())
	for i := 0; i < table.NumRows(); i++ {
		out[table.Value(i, j)] = true
	}
	return out
}

func TestSplit(t *testing.T) {
	t.Run("502 rows at 0.70 give 351 train and 151 test", func(t *testing.T) {
		train, test, err := Split(idTable(t, 502), 0.70, 1234)
		require.NoError(t, err)
		assert.Equal(t, 351, train.NumRows())
		assert.Equal(t, 151, test.NumRows())
	})

	t.Run("partitions are disjoint and cover the input", func(t *testing.T) {
		table := idTable(t, 97)
		train, test, err := Split(table, 0.70, 5)
		require.NoError(t, err)

		assert.Equal(t, table.NumRows(), train.NumRows()+test.NumRows())

		trainIDs := ids(t, train)
		testIDs := ids(t, test)
		for id := range trainIDs {
			assert.False(t, testIDs[id], "row %v in both partitions", id)
		}
		assert.Len(t, trainIDs, train.NumRows())
		assert.Len(t, testIDs, test.NumRows())
	})

	t.Run("same seed reproduces the partition", func(t *testing.T) {
		table := idTable(t, 200)
		trainA, _, err := Split(table, 0.70, 99)
		require.NoError(t, err)
		trainB, _, err := Split(table, 0.70, 99)
		require.NoError(t, err)

		assert.Equal(t, ids(t, trainA), ids(t, trainB))
	})

	t.Run("different seeds shuffle differently", func(t *testing.T) {
		table := idTable(t, 200)
		trainA, _, err := Split(table, 0.70, 1)
		require.NoError(t, err)
		trainB, _, err := Split(table, 0.70, 2)
		require.NoError(t, err)

		assert.NotEqual(t, ids(t, trainA), ids(t, trainB))
	})

	t.Run("rejects out-of-range fractions", func(t *testing.T) {
		table := idTable(t, 10)
		for _, fraction := range []float64{0, 1, -0.3, 1.5} {
			_, _, err := Split(table, fraction, 1)
			assert.Error(t, err, "fraction %v", fraction)
		}
	})
}
