package document_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/classifier"
	"github.com/tsawler/legoclassify/classifiers"
	"github.com/tsawler/legoclassify/config"
	"github.com/tsawler/legoclassify/document"
	"github.com/tsawler/legoclassify/geometry"
)

// pageWithNumber builds a single-text-block page: one Text "n" near the
// bottom-left corner, the canonical minimal page-number scenario.
func pageWithNumber(t *testing.T, index int, value string) *block.PageData {
	t.Helper()
	box := geometry.MustBBox(10, 820, 25, 835)
	blocks := []block.Block{
		block.Text{BlockID: 0, Box: box, Text: value, FontSize: 10},
	}
	pd, err := block.NewPageData(index, 600, 840, blocks)
	require.NoError(t, err)
	return pd
}

func TestClassifyOrdersResultsByPageIndexRegardlessOfCompletionOrder(t *testing.T) {
	cfg := config.DefaultSolverConfig()
	pipeline, err := classifier.NewPipeline(classifiers.All(), cfg, zerolog.Nop())
	require.NoError(t, err)

	pages := []*block.PageData{
		pageWithNumber(t, 1, "1"),
		pageWithNumber(t, 2, "2"),
		pageWithNumber(t, 3, "3"),
	}

	results := document.Classify(context.Background(), pipeline, pages)
	require.Len(t, results, 3)

	for i, res := range results {
		assert.NoError(t, res.Err)
		require.NotNil(t, res.Page.PageNumber, "page %d: expected a PageNumber element", i+1)
		assert.Equal(t, i+1, res.Page.PageNumber.Value)
		assert.Equal(t, i+1, res.Report.PageIndex)
	}
}

func TestClassifySinglePage(t *testing.T) {
	cfg := config.DefaultSolverConfig()
	pipeline, err := classifier.NewPipeline(classifiers.All(), cfg, zerolog.Nop())
	require.NoError(t, err)

	results := document.Classify(context.Background(), pipeline, []*block.PageData{pageWithNumber(t, 1, "5")})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Page.PageNumber)
	assert.Equal(t, 5, results[0].Page.PageNumber.Value)
	assert.Contains(t, results[0].Report.ConsumedBlocks, 0)
}
