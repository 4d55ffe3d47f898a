package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/storage"
)

func TestBuildBarScalesToLargestValue(t *testing.T) {
	res := &storage.Result{
		Columns: []string{"Category", "Total_Spent"},
		Rows: [][]string{
			{"Food", "200"},
			{"Bills", "100"},
			{"Stationery", "1"},
		},
	}

	bar := buildBar(res)
	require.NotNil(t, bar)
	require.Len(t, bar.Rows, 3)
	assert.Equal(t, 100, bar.Rows[0].Width)
	assert.Equal(t, 50, bar.Rows[1].Width)
	assert.Equal(t, 2, bar.Rows[2].Width) // tiny values stay visible
}

func TestBuildBarSkipsNonNumericRows(t *testing.T) {
	res := &storage.Result{
		Columns: []string{"Category", "Total_Spent"},
		Rows: [][]string{
			{"Food", "150.5"},
			{"Bills", "n/a"},
		},
	}

	bar := buildBar(res)
	require.NotNil(t, bar)
	require.Len(t, bar.Rows, 1)
	assert.Equal(t, "Food", bar.Rows[0].Label)
}

func TestBuildBarNilForUnchartableResults(t *testing.T) {
	assert.Nil(t, buildBar(&storage.Result{Columns: []string{"only"}}))
	assert.Nil(t, buildBar(&storage.Result{Columns: []string{"a", "b"}}))
}

func TestBuildPie(t *testing.T) {
	res := &storage.Result{
		Columns: []string{"Category", "Total_Spent"},
		Rows: [][]string{
			{"Food", "75"},
			{"Bills", "25"},
		},
	}

	pie := buildPie(res)
	require.NotNil(t, pie)
	require.Len(t, pie.Slices, 2)
	assert.Equal(t, "75.0%", pie.Slices[0].Pct)
	assert.Equal(t, "25.0%", pie.Slices[1].Pct)
	for _, s := range pie.Slices {
		assert.True(t, strings.HasPrefix(s.Path, "M "), "path %q", s.Path)
		assert.NotEmpty(t, s.Color)
	}
}

func TestBuildPieSingleSliceIsFullCircle(t *testing.T) {
	res := &storage.Result{
		Columns: []string{"Category", "Total_Spent"},
		Rows:    [][]string{{"Food", "42"}},
	}

	pie := buildPie(res)
	require.NotNil(t, pie)
	require.Len(t, pie.Slices, 1)
	// Full circles are drawn as two arcs, not a degenerate pie wedge.
	assert.Contains(t, pie.Slices[0].Path, "a ")
	assert.Equal(t, "100.0%", pie.Slices[0].Pct)
}

func TestBuildPieIgnoresNonPositiveValues(t *testing.T) {
	res := &storage.Result{
		Columns: []string{"Category", "Total_Spent"},
		Rows: [][]string{
			{"Food", "10"},
			{"Refund", "-5"},
			{"Zero", "0"},
		},
	}

	pie := buildPie(res)
	require.NotNil(t, pie)
	assert.Len(t, pie.Slices, 1)
}

func TestBuildLine(t *testing.T) {
	res := &storage.Result{
		Columns: []string{"Date", "Daily_Spent"},
		Rows: [][]string{
			{"2024-01-01", "10"},
			{"2024-01-02", "30"},
			{"2024-01-03", "20"},
		},
	}

	line := buildLine(res)
	require.NotNil(t, line)
	assert.Equal(t, "2024-01-01", line.First)
	assert.Equal(t, "2024-01-03", line.Last)
	assert.Len(t, strings.Fields(line.Points), 3)
}

func TestBuildLineNeedsTwoPoints(t *testing.T) {
	res := &storage.Result{
		Columns: []string{"Date", "Daily_Spent"},
		Rows:    [][]string{{"2024-01-01", "10"}},
	}
	assert.Nil(t, buildLine(res))
}
