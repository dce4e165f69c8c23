package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtg-labels/models"
)

func letterLayout(t *testing.T) *GridLayout {
	t.Helper()
	paper, err := models.LookupPaperSize("letter")
	require.NoError(t, err)
	return NewGridLayout(paper)
}

func resolvedSets(n int) []ResolvedSet {
	sets := make([]ResolvedSet, n)
	for i := range sets {
		code := fmt.Sprintf("s%02d", i)
		sets[i] = ResolvedSet{
			Set:          models.SetRecord{Code: code, Name: "Set " + code},
			DisplayName:  "Set " + code,
			IconFilename: code + ".svg",
		}
	}
	return sets
}

func TestGridLayout_Geometry(t *testing.T) {
	layout := letterLayout(t)

	assert.Equal(t, 30, layout.Capacity())

	x, y := layout.Start()
	assert.Equal(t, 40.0, x)
	assert.Equal(t, 80.0, y)

	dx, dy := layout.Deltas()
	assert.InDelta(t, (2160.0-80)/3+10, dx, 1e-9)
	assert.InDelta(t, (2790.0-80)/10-18, dy, 1e-9)
}

func TestGridLayout_Positions(t *testing.T) {
	layout := letterLayout(t)
	dx, dy := layout.Deltas()
	labels := layout.Layout(resolvedSets(35))
	require.Len(t, labels, 35)

	// first label sits at the start
	assert.Equal(t, 40.0, labels[0].X)
	assert.Equal(t, 80.0, labels[0].Y)

	// a column fills top to bottom
	assert.Equal(t, 40.0, labels[9].X)
	assert.InDelta(t, 80+9*dy, labels[9].Y, 1e-9)

	// index 10 starts the second column
	assert.InDelta(t, 40+dx, labels[10].X, 1e-9)
	assert.Equal(t, 80.0, labels[10].Y)

	// index 29 is the last slot of the page
	assert.InDelta(t, 40+2*dx, labels[29].X, 1e-9)
	assert.InDelta(t, 80+9*dy, labels[29].Y, 1e-9)

	// index 30 starts over on a new page
	assert.Equal(t, 40.0, labels[30].X)
	assert.Equal(t, 80.0, labels[30].Y)
	assert.InDelta(t, 80+4*dy, labels[34].Y, 1e-9)
}

func TestGridLayout_KeepsOrderAndFields(t *testing.T) {
	layout := letterLayout(t)
	sets := resolvedSets(3)
	sets[1].DisplayName = "Fourth Edition FBB"

	labels := layout.Layout(sets)
	assert.Equal(t, []string{"s00", "s01", "s02"}, models.PageBatch{Labels: labels}.Codes())
	assert.Equal(t, "Fourth Edition FBB", labels[1].Name)
	assert.Equal(t, "s02.svg", labels[2].IconFilename)
}

func TestPaginate(t *testing.T) {
	layout := letterLayout(t)

	tests := []struct {
		labels int
		pages  int
	}{
		{labels: 0, pages: 0},
		{labels: 1, pages: 1},
		{labels: 30, pages: 1},
		{labels: 31, pages: 2},
		{labels: 35, pages: 2},
		{labels: 90, pages: 3},
		{labels: 91, pages: 4},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d labels", tt.labels), func(t *testing.T) {
			pages := Paginate(layout.Layout(resolvedSets(tt.labels)), layout.Capacity())
			require.Len(t, pages, tt.pages)

			total := 0
			for i, page := range pages {
				assert.Equal(t, i+1, page.Number)
				if i < len(pages)-1 {
					assert.Len(t, page.Labels, layout.Capacity())
				}
				total += len(page.Labels)
			}
			assert.Equal(t, tt.labels, total)
		})
	}
}

func TestPaginate_PagesStartAtGridOrigin(t *testing.T) {
	layout := letterLayout(t)
	pages := Paginate(layout.Layout(resolvedSets(65)), layout.Capacity())
	require.Len(t, pages, 3)

	for _, page := range pages {
		assert.Equal(t, 40.0, page.Labels[0].X, "page %d", page.Number)
		assert.Equal(t, 80.0, page.Labels[0].Y, "page %d", page.Number)
	}
}
