package tourapi

import (
	"context"
	"strconv"
)

// Default page sizes per operation.
const (
	DefaultAreaCodeRows = 100
	DefaultListingRows  = 20
)

// AreaCodeParams selects region codes. With AreaCode empty the
// top-level provinces are returned; set it to list a province's
// districts.
type AreaCodeParams struct {
	AreaCode  string
	NumOfRows int
	PageNo    int
}

// AreaCodes fetches region codes (areaCode2). Reference data, cached
// for an hour.
func (c *Client) AreaCodes(ctx context.Context, p AreaCodeParams) (*Envelope[AreaCodeItem], error) {
	if p.NumOfRows <= 0 {
		p.NumOfRows = DefaultAreaCodeRows
	}
	if p.PageNo <= 0 {
		p.PageNo = 1
	}

	params := map[string]string{
		"areaCode":  p.AreaCode,
		"numOfRows": strconv.Itoa(p.NumOfRows),
		"pageNo":    strconv.Itoa(p.PageNo),
	}
	return fetchEnvelope[AreaCodeItem](ctx, c, "areaCode2", params, TTLReference)
}

// AreaBasedListParams filters an area-based listing. All fields are
// optional; zero values are omitted from the request.
type AreaBasedListParams struct {
	AreaCode    string
	ContentType ContentType
	SigunguCode string
	Cat1        string
	Cat2        string
	Cat3        string
	NumOfRows   int
	PageNo      int
}

func (p *AreaBasedListParams) query() map[string]string {
	if p.NumOfRows <= 0 {
		p.NumOfRows = DefaultListingRows
	}
	if p.PageNo <= 0 {
		p.PageNo = 1
	}
	return map[string]string{
		"areaCode":      p.AreaCode,
		"contentTypeId": p.ContentType.queryValue(),
		"sigunguCode":   p.SigunguCode,
		"cat1":          p.Cat1,
		"cat2":          p.Cat2,
		"cat3":          p.Cat3,
		"numOfRows":     strconv.Itoa(p.NumOfRows),
		"pageNo":        strconv.Itoa(p.PageNo),
	}
}

// AreaBasedList fetches a paginated place listing (areaBasedList2).
// Volatile data, cached for five minutes.
func (c *Client) AreaBasedList(ctx context.Context, p AreaBasedListParams) (*Envelope[TourItem], error) {
	return fetchEnvelope[TourItem](ctx, c, "areaBasedList2", p.query(), TTLListing)
}

// SearchKeywordParams drives a keyword search. Keyword is required; the
// remaining filters match AreaBasedListParams.
type SearchKeywordParams struct {
	Keyword     string
	AreaCode    string
	ContentType ContentType
	Cat1        string
	Cat2        string
	Cat3        string
	NumOfRows   int
	PageNo      int
}

// SearchKeyword fetches places matching a keyword (searchKeyword2).
// Volatile data, cached for five minutes.
func (c *Client) SearchKeyword(ctx context.Context, p SearchKeywordParams) (*Envelope[TourItem], error) {
	if p.Keyword == "" {
		return nil, ErrMissingKeyword
	}
	if p.NumOfRows <= 0 {
		p.NumOfRows = DefaultListingRows
	}
	if p.PageNo <= 0 {
		p.PageNo = 1
	}

	params := map[string]string{
		"keyword":       p.Keyword,
		"areaCode":      p.AreaCode,
		"contentTypeId": p.ContentType.queryValue(),
		"cat1":          p.Cat1,
		"cat2":          p.Cat2,
		"cat3":          p.Cat3,
		"numOfRows":     strconv.Itoa(p.NumOfRows),
		"pageNo":        strconv.Itoa(p.PageNo),
	}
	return fetchEnvelope[TourItem](ctx, c, "searchKeyword2", params, TTLListing)
}

// DetailCommon fetches the common detail record for a place
// (detailCommon2). Reference data, cached for an hour.
func (c *Client) DetailCommon(ctx context.Context, contentID string) (*Envelope[TourDetail], error) {
	if contentID == "" {
		return nil, ErrMissingContentID
	}

	params := map[string]string{
		"contentId": contentID,
	}
	return fetchEnvelope[TourDetail](ctx, c, "detailCommon2", params, TTLReference)
}

// DetailIntro fetches the per-type introduction record (detailIntro2).
// The upstream requires the content type alongside the id because the
// returned field set depends on it. Cached for an hour.
func (c *Client) DetailIntro(ctx context.Context, contentID string, contentType ContentType) (*Envelope[TourIntro], error) {
	if contentID == "" {
		return nil, ErrMissingContentID
	}

	params := map[string]string{
		"contentId":     contentID,
		"contentTypeId": contentType.queryValue(),
	}
	return fetchEnvelope[TourIntro](ctx, c, "detailIntro2", params, TTLReference)
}

// DetailImageParams selects a place's image list. The YN flags default
// to "Y" (include the primary image and sub-images).
type DetailImageParams struct {
	ContentID  string
	ImageYN    string
	SubImageYN string
}

// DetailImages fetches a place's images (detailImage2). The first
// record is the primary image; upstream order is preserved. Cached for
// an hour.
func (c *Client) DetailImages(ctx context.Context, p DetailImageParams) (*Envelope[TourImage], error) {
	if p.ContentID == "" {
		return nil, ErrMissingContentID
	}
	if p.ImageYN == "" {
		p.ImageYN = "Y"
	}
	if p.SubImageYN == "" {
		p.SubImageYN = "Y"
	}

	params := map[string]string{
		"contentId":  p.ContentID,
		"imageYN":    p.ImageYN,
		"subImageYN": p.SubImageYN,
	}
	return fetchEnvelope[TourImage](ctx, c, "detailImage2", params, TTLReference)
}

// DetailPetTour fetches pet-accompanied travel info (detailPetTour2).
// Most places have none, so absence is an expected outcome, not an
// error: the method returns (nil, nil) when no data exists, including
// when the upstream reports the lookup itself as failed. Cached for an
// hour.
func (c *Client) DetailPetTour(ctx context.Context, contentID string) (*PetTourInfo, error) {
	if contentID == "" {
		return nil, ErrMissingContentID
	}

	params := map[string]string{
		"contentId": contentID,
	}
	env, err := fetchEnvelope[PetTourInfo](ctx, c, "detailPetTour2", params, TTLReference)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("content_id", contentID).
			Msg("no pet tour data")
		return nil, nil
	}

	items := env.Items()
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}
