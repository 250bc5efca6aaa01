package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePageDataRoundTrip(t *testing.T) {
	wire := `{
		"index": 1,
		"width": 600,
		"height": 840,
		"blocks": [
			{"kind": "text", "id": 0, "bbox": [10, 820, 25, 835], "text": "5", "font_size": 9},
			{"kind": "image", "id": 1, "bbox": [50, 100, 150, 200], "image_id": "img-1"},
			{"kind": "drawing", "id": 2, "bbox": [0, 0, 600, 840], "thickness": 1.5}
		]
	}`

	pd, dropped, err := DecodePageData([]byte(wire))
	require.NoError(t, err)
	assert.Empty(t, dropped)
	require.NotNil(t, pd)

	assert.Equal(t, 1, pd.Index())
	assert.Equal(t, 600.0, pd.Width())
	assert.Equal(t, 840.0, pd.Height())
	require.Len(t, pd.Blocks(), 3)

	text, ok := pd.BlockByID(0).(Text)
	require.True(t, ok)
	assert.Equal(t, "5", text.Text)
	assert.Equal(t, 9.0, text.FontSize)

	img, ok := pd.BlockByID(1).(Image)
	require.True(t, ok)
	assert.Equal(t, "img-1", img.ImageID)

	drawing, ok := pd.BlockByID(2).(Drawing)
	require.True(t, ok)
	assert.Equal(t, 1.5, drawing.Thickness)
}

func TestDecodePageDataDropsInvalidBBox(t *testing.T) {
	wire := `{
		"index": 1,
		"width": 600,
		"height": 840,
		"blocks": [
			{"kind": "text", "id": 0, "bbox": [10, 820, 25, 835], "text": "ok"},
			{"kind": "text", "id": 1, "bbox": [25, 820, 10, 835], "text": "bad x0>x1"}
		]
	}`

	pd, dropped, err := DecodePageData([]byte(wire))
	require.NoError(t, err)
	require.Len(t, dropped, 1)
	assert.Equal(t, 1, dropped[0].ID)
	require.Len(t, pd.Blocks(), 1)
	assert.Equal(t, 0, pd.Blocks()[0].ID())
}

func TestDecodePageDataUnknownKind(t *testing.T) {
	wire := `{"index": 1, "width": 10, "height": 10, "blocks": [{"kind": "chart", "id": 0, "bbox": [0,0,1,1]}]}`
	_, _, err := DecodePageData([]byte(wire))
	assert.Error(t, err)
}
