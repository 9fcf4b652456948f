// Package tourapi provides a client for the Korea Tourism Organization
// KorService2 open API.
//
// The upstream service is a government REST API with a number of quirks
// this package absorbs so callers don't have to:
//
//   - Responses are wrapped in a nested envelope
//     (response.header / response.body.items.item) whose "item" value
//     may be a single object, an array, or missing entirely. The
//     ItemList type decodes all three shapes into a uniform slice.
//   - Numeric fields are sometimes emitted as JSON strings.
//   - Failures surface either as transport errors, as non-JSON bodies,
//     or as an in-band resultCode in an otherwise healthy 200 response.
//   - Coordinates are delivered in an integer-scaled planar format that
//     needs conversion to WGS84 before they are useful.
//
// # Usage
//
// Create a client with a data.go.kr service key:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := tourapi.NewClient(serviceKey, logger,
//		tourapi.WithMaxRetries(3),
//		tourapi.WithRateLimit(10),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.AreaBasedList(ctx, tourapi.AreaBasedListParams{
//		AreaCode: "1",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, item := range resp.Items() {
//		fmt.Println(item.Title)
//	}
//
// # Resilience
//
// Every call runs with a 10 second per-attempt timeout and retries
// transient failures with exponential backoff (1s, 2s, 4s, capped at
// 5s). Authentication failures reported by the upstream result code are
// terminal and never retried. Successful responses are cached through a
// pluggable Cache with per-endpoint TTLs: reference data (area codes,
// details, images) for an hour, volatile listings for five minutes.
package tourapi
