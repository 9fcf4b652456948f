package stats

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneulk/kortour/tourapi"
)

const regionCount = 17

// failingAreas simulate per-region upstream failures; those regions
// must degrade to zero instead of failing the aggregation.
var failingAreas = map[string]bool{"4": true, "9": true}

func newStatsService(t *testing.T) *Service {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/areaCode2":
			var items []string
			for i := 1; i <= regionCount; i++ {
				items = append(items, fmt.Sprintf(`{"code": "%d", "name": "지역%d", "rnum": %d}`, i, i, i))
			}
			fmt.Fprintf(w, `{
				"response": {
					"header": {"resultCode": "0000", "resultMsg": "OK"},
					"body": {"items": {"item": [%s]}, "numOfRows": 100, "pageNo": 1, "totalCount": %d}
				}
			}`, strings.Join(items, ","), regionCount)

		case "/areaBasedList2":
			// Counting calls ask for a single row and read totalCount.
			assert.Equal(t, "1", r.URL.Query().Get("numOfRows"))

			total := 0
			if area := r.URL.Query().Get("areaCode"); area != "" {
				if failingAreas[area] {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				n, _ := strconv.Atoi(area)
				total = n * 10
			} else if typeID := r.URL.Query().Get("contentTypeId"); typeID != "" {
				total, _ = strconv.Atoi(typeID)
			}

			fmt.Fprintf(w, `{
				"response": {
					"header": {"resultCode": "0000", "resultMsg": "OK"},
					"body": {"items": "", "numOfRows": 1, "pageNo": 1, "totalCount": %d}
				}
			}`, total)

		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := tourapi.NewClient("test-key", zerolog.Nop(),
		tourapi.WithBaseURL(server.URL),
		tourapi.WithMaxRetries(0),
		tourapi.WithCache(nil),
	)
	require.NoError(t, err)

	return NewService(client, zerolog.Nop())
}

func TestRegionStatsPartialFailure(t *testing.T) {
	service := newStatsService(t)

	results, err := service.RegionStats(context.Background())
	require.NoError(t, err)
	require.Len(t, results, regionCount)

	// Ranked descending; the two failed regions degrade to zero and
	// sort last, keeping their original relative order.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Count, results[i].Count)
	}

	assert.Equal(t, "지역17", results[0].AreaName)
	assert.Equal(t, 170, results[0].Count)

	zeros := results[regionCount-2:]
	assert.Equal(t, 0, zeros[0].Count)
	assert.Equal(t, 0, zeros[1].Count)
	assert.Equal(t, "4", zeros[0].AreaCode)
	assert.Equal(t, "9", zeros[1].AreaCode)
}

func TestTypeStatsRanking(t *testing.T) {
	service := newStatsService(t)

	results := service.TypeStats(context.Background())
	require.Len(t, results, len(tourapi.AllContentTypes()))

	// The mock reports each type's id as its count, so ranking is by
	// descending id.
	assert.Equal(t, "39", results[0].ContentTypeID)
	assert.Equal(t, "음식점", results[0].TypeName)
	assert.Equal(t, 39, results[0].Count)
	assert.Equal(t, "12", results[len(results)-1].ContentTypeID)
}

func TestSummary(t *testing.T) {
	service := newStatsService(t)

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)

	// Sum of the non-failing regions: 10*(1+..+17) minus areas 4 and 9.
	assert.Equal(t, 1400, summary.TotalCount)

	require.Len(t, summary.TopRegions, 3)
	assert.Equal(t, 170, summary.TopRegions[0].Count)
	require.Len(t, summary.TopTypes, 3)
	assert.Equal(t, "음식점", summary.TopTypes[0].TypeName)
	assert.False(t, summary.LastUpdated.IsZero())
}

func TestSummaryFailsWithoutAreaCodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client, err := tourapi.NewClient("test-key", zerolog.Nop(),
		tourapi.WithBaseURL(server.URL),
		tourapi.WithMaxRetries(0),
		tourapi.WithCache(nil),
	)
	require.NoError(t, err)

	service := NewService(client, zerolog.Nop())
	_, err = service.Summary(context.Background())
	assert.Error(t, err)
}
