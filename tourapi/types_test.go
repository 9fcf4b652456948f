package tourapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemListNormalization(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []TourImage
	}{
		{
			name: "null item",
			body: `{"item": null}`,
			want: nil,
		},
		{
			name: "missing item",
			body: `{}`,
			want: nil,
		},
		{
			name: "single object promoted to slice",
			body: `{"item": {"contentid": "1"}}`,
			want: []TourImage{{ContentID: "1"}},
		},
		{
			name: "array preserved in order",
			body: `{"item": [{"contentid": "1"}, {"contentid": "2"}]}`,
			want: []TourImage{{ContentID: "1"}, {ContentID: "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var items Items[TourImage]
			require.NoError(t, json.Unmarshal([]byte(tt.body), &items))
			assert.Equal(t, tt.want, items.Item.Records())
		})
	}
}

func TestItemsEmptyString(t *testing.T) {
	// When there are no rows the upstream emits "items": "".
	var body Body[TourItem]
	require.NoError(t, json.Unmarshal([]byte(`{"items": "", "totalCount": 0}`), &body))
	assert.Empty(t, body.Items.Item.Records())
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"number", `123`, 123},
		{"quoted number", `"456"`, 456},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n FlexInt
			require.NoError(t, json.Unmarshal([]byte(tt.body), &n))
			assert.Equal(t, tt.want, n.Int())
		})
	}

	var n FlexInt
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &n))
}

func TestEnvelopeDecoding(t *testing.T) {
	const body = `{
		"response": {
			"header": {"resultCode": "0000", "resultMsg": "OK"},
			"body": {
				"items": {"item": [{"contentid": "100", "title": "경복궁", "mapx": "1269765000", "mapy": "375796000"}]},
				"numOfRows": "20",
				"pageNo": 1,
				"totalCount": 1234
			}
		}
	}`

	var env Envelope[TourItem]
	require.NoError(t, json.Unmarshal([]byte(body), &env))

	items := env.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "경복궁", items[0].Title)

	meta := env.Meta()
	assert.Equal(t, 1234, meta.TotalCount)
	assert.Equal(t, 1, meta.PageNo)
	assert.Equal(t, 20, meta.NumOfRows)
}

func TestContentTypeNames(t *testing.T) {
	assert.Equal(t, "관광지", ContentTypeAttraction.Name())
	assert.Equal(t, "음식점", ContentTypeRestaurant.Name())
	assert.Equal(t, "타입 77", ContentType(77).Name())
	assert.Len(t, AllContentTypes(), 8)
}

func TestTourItemHelpers(t *testing.T) {
	item := TourItem{MapX: "1275000000", MapY: "375000000", FirstImage: "http://example.com/a.jpg"}

	lng, lat := item.Coordinates()
	assert.Equal(t, 127.5, lng)
	assert.Equal(t, 37.5, lat)
	assert.True(t, item.HasImage())
	assert.False(t, (&TourItem{}).HasImage())
}
