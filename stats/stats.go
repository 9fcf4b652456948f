// Package stats aggregates place counts per region and content type by
// fanning out numOfRows=1 listing calls and reading only totalCount,
// avoiding full record payloads just to count them.
package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/haneulk/kortour/tourapi"
)

// DefaultConcurrency bounds parallel counting calls so a statistics run
// does not blow through the upstream request quota.
const DefaultConcurrency = 8

// topN is how many regions and types the summary surfaces.
const topN = 3

// Service builds tourism statistics over a tour API client.
type Service struct {
	client      *tourapi.Client
	logger      zerolog.Logger
	concurrency int
}

// NewService creates a statistics service.
func NewService(client *tourapi.Client, logger zerolog.Logger) *Service {
	return &Service{
		client:      client,
		logger:      logger,
		concurrency: DefaultConcurrency,
	}
}

// SetConcurrency overrides the fan-out bound.
func (s *Service) SetConcurrency(n int) {
	if n > 0 {
		s.concurrency = n
	}
}

// RegionStats counts places per area code, ranked descending by count.
// A failed count degrades that region to zero instead of failing the
// whole aggregation; zero entries rank last.
func (s *Service) RegionStats(ctx context.Context) ([]RegionStat, error) {
	resp, err := s.client.AreaCodes(ctx, tourapi.AreaCodeParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch area codes: %w", err)
	}
	areas := resp.Items()

	results := make([]RegionStat, len(areas))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, area := range areas {
		i, area := i, area
		g.Go(func() error {
			count := s.countListing(gctx, tourapi.AreaBasedListParams{AreaCode: area.Code}, "area "+area.Code)
			results[i] = RegionStat{
				AreaCode: area.Code,
				AreaName: area.Name,
				Count:    count,
			}
			return nil
		})
	}
	g.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Count > results[j].Count
	})
	return results, nil
}

// TypeStats counts places per content type, ranked descending by count.
func (s *Service) TypeStats(ctx context.Context) []TypeStat {
	types := tourapi.AllContentTypes()
	results := make([]TypeStat, len(types))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, contentType := range types {
		i, contentType := i, contentType
		g.Go(func() error {
			count := s.countListing(gctx, tourapi.AreaBasedListParams{ContentType: contentType}, "type "+contentType.Name())
			results[i] = TypeStat{
				ContentTypeID: fmt.Sprintf("%d", int(contentType)),
				TypeName:      contentType.Name(),
				Count:         count,
			}
			return nil
		})
	}
	g.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Count > results[j].Count
	})
	return results
}

// Summary collects both breakdowns concurrently and folds them into the
// headline view.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var (
		regionStats []RegionStat
		typeStats   []TypeStat
		regionErr   error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		regionStats, regionErr = s.RegionStats(gctx)
		return nil
	})
	g.Go(func() error {
		typeStats = s.TypeStats(gctx)
		return nil
	})
	g.Wait()

	if regionErr != nil {
		return nil, regionErr
	}

	total := 0
	for _, stat := range regionStats {
		total += stat.Count
	}

	return &Summary{
		TotalCount:  total,
		TopRegions:  regionStats[:min(topN, len(regionStats))],
		TopTypes:    typeStats[:min(topN, len(typeStats))],
		LastUpdated: time.Now(),
	}, nil
}

// countListing reads totalCount for one filter combination. Each call
// carries its own retry budget; failures are logged and degrade to
// zero (indistinguishable from a truly empty region, a known
// limitation).
func (s *Service) countListing(ctx context.Context, params tourapi.AreaBasedListParams, label string) int {
	params.NumOfRows = 1
	params.PageNo = 1

	resp, err := s.client.AreaBasedList(ctx, params)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("filter", label).
			Msg("count degraded to zero")
		return 0
	}
	return resp.Meta().TotalCount
}
