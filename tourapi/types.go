package tourapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ContentType is the upstream category classifier for a place.
type ContentType int

// Content types defined by KorService2.
const (
	ContentTypeAttraction ContentType = 12
	ContentTypeCulture    ContentType = 14
	ContentTypeFestival   ContentType = 15
	ContentTypeCourse     ContentType = 25
	ContentTypeLeports    ContentType = 28
	ContentTypeLodging    ContentType = 32
	ContentTypeShopping   ContentType = 38
	ContentTypeRestaurant ContentType = 39
)

var contentTypeNames = map[ContentType]string{
	ContentTypeAttraction: "관광지",
	ContentTypeCulture:    "문화시설",
	ContentTypeFestival:   "축제/행사",
	ContentTypeCourse:     "여행코스",
	ContentTypeLeports:    "레포츠",
	ContentTypeLodging:    "숙박",
	ContentTypeShopping:   "쇼핑",
	ContentTypeRestaurant: "음식점",
}

// Name returns the Korean display name for the content type.
func (t ContentType) Name() string {
	if name, ok := contentTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("타입 %d", int(t))
}

// queryValue formats the type for a query parameter; zero means unset.
func (t ContentType) queryValue() string {
	if t == 0 {
		return ""
	}
	return strconv.Itoa(int(t))
}

// AllContentTypes returns every known content type in stable order.
func AllContentTypes() []ContentType {
	return []ContentType{
		ContentTypeAttraction,
		ContentTypeCulture,
		ContentTypeFestival,
		ContentTypeCourse,
		ContentTypeLeports,
		ContentTypeLodging,
		ContentTypeShopping,
		ContentTypeRestaurant,
	}
}

// FlexInt decodes integers the upstream emits either as numbers or as
// quoted strings. Empty strings and null decode to zero.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q: %w", s, err)
	}
	*n = FlexInt(v)
	return nil
}

// Int returns the value as a plain int.
func (n FlexInt) Int() int {
	return int(n)
}

// ItemList decodes the upstream "item" value, which is an array when
// multiple rows match, a bare object when exactly one does, and null or
// absent when none do. All shapes normalize to a slice; upstream order
// is preserved (the first image is the primary image).
type ItemList[T any] struct {
	records []T
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *ItemList[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte(`""`)):
		l.records = nil
		return nil
	case data[0] == '[':
		return json.Unmarshal(data, &l.records)
	default:
		var single T
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		l.records = []T{single}
		return nil
	}
}

// Records returns the normalized slice. Never a bare object: a
// single-item response comes back as a one-element slice.
func (l ItemList[T]) Records() []T {
	return l.records
}

// Len returns the number of decoded records.
func (l ItemList[T]) Len() int {
	return len(l.records)
}

// Items wraps response.body.items. The upstream emits an object with an
// "item" key, an empty string when there are no rows, or omits the key.
type Items[T any] struct {
	Item ItemList[T] `json:"item"`
}

// itemsFields mirrors Items without its UnmarshalJSON method so the
// wrapper can decode the object form without recursing.
type itemsFields[T any] struct {
	Item ItemList[T] `json:"item"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (it *Items[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		it.Item = ItemList[T]{}
		return nil
	}
	var a itemsFields[T]
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	it.Item = a.Item
	return nil
}

// Header carries the upstream result code and message.
type Header struct {
	ResultCode string `json:"resultCode"`
	ResultMsg  string `json:"resultMsg"`
}

// Body carries the rows and pagination metadata of a response.
type Body[T any] struct {
	Items      Items[T] `json:"items"`
	NumOfRows  FlexInt  `json:"numOfRows"`
	PageNo     FlexInt  `json:"pageNo"`
	TotalCount FlexInt  `json:"totalCount"`
}

// Envelope is the full KorService2 response wrapper.
type Envelope[T any] struct {
	Response struct {
		Header Header  `json:"header"`
		Body   Body[T] `json:"body"`
	} `json:"response"`
}

// Items returns the normalized record slice.
func (e *Envelope[T]) Items() []T {
	if e == nil {
		return nil
	}
	return e.Response.Body.Items.Item.Records()
}

// Meta returns pagination metadata for listing operations.
func (e *Envelope[T]) Meta() PageMeta {
	if e == nil {
		return PageMeta{}
	}
	body := e.Response.Body
	return PageMeta{
		TotalCount: body.TotalCount.Int(),
		PageNo:     body.PageNo.Int(),
		NumOfRows:  body.NumOfRows.Int(),
	}
}

// PageMeta is the pagination metadata of a listing response.
type PageMeta struct {
	TotalCount int
	PageNo     int
	NumOfRows  int
}

// TourItem is a listing row from areaBasedList2 or searchKeyword2.
type TourItem struct {
	ContentID     string `json:"contentid"`
	ContentTypeID string `json:"contenttypeid"`
	Title         string `json:"title"`
	Addr1         string `json:"addr1"`
	Addr2         string `json:"addr2"`
	AreaCode      string `json:"areacode"`
	SigunguCode   string `json:"sigungucode"`
	MapX          string `json:"mapx"`
	MapY          string `json:"mapy"`
	FirstImage    string `json:"firstimage"`
	FirstImage2   string `json:"firstimage2"`
	Tel           string `json:"tel"`
	Cat1          string `json:"cat1"`
	Cat2          string `json:"cat2"`
	Cat3          string `json:"cat3"`
	CreatedTime   string `json:"createdtime"`
	ModifiedTime  string `json:"modifiedtime"`
}

// Coordinates converts the item's planar coordinates to WGS84.
func (t *TourItem) Coordinates() (lng, lat float64) {
	return ConvertKATECToWGS84(t.MapX, t.MapY)
}

// HasImage reports whether a representative image URL is present.
func (t *TourItem) HasImage() bool {
	return t.FirstImage != "" || t.FirstImage2 != ""
}

// TourDetail is the common detail record from detailCommon2.
type TourDetail struct {
	ContentID     string `json:"contentid"`
	ContentTypeID string `json:"contenttypeid"`
	Title         string `json:"title"`
	Addr1         string `json:"addr1"`
	Addr2         string `json:"addr2"`
	Zipcode       string `json:"zipcode"`
	Tel           string `json:"tel"`
	Homepage      string `json:"homepage"`
	Overview      string `json:"overview"`
	FirstImage    string `json:"firstimage"`
	FirstImage2   string `json:"firstimage2"`
	MapX          string `json:"mapx"`
	MapY          string `json:"mapy"`
	AreaCode      string `json:"areacode"`
	SigunguCode   string `json:"sigungucode"`
	Cat1          string `json:"cat1"`
	Cat2          string `json:"cat2"`
	Cat3          string `json:"cat3"`
	CreatedTime   string `json:"createdtime"`
	ModifiedTime  string `json:"modifiedtime"`
}

// Coordinates converts the detail's planar coordinates to WGS84.
func (t *TourDetail) Coordinates() (lng, lat float64) {
	return ConvertKATECToWGS84(t.MapX, t.MapY)
}

// TourIntro is the per-type introduction record from detailIntro2.
// The upstream field set varies by content type; consumers read the
// fields present for theirs.
type TourIntro struct {
	ContentID      string `json:"contentid"`
	ContentTypeID  string `json:"contenttypeid"`
	InfoCenter     string `json:"infocenter"`
	Parking        string `json:"parking"`
	ChkPet         string `json:"chkpet"`
	UseTime        string `json:"usetime"`
	RestDate       string `json:"restdate"`
	UseSeason      string `json:"useseason"`
	UseCost        string `json:"usecost"`
	AccomCount     string `json:"accomcount"`
	ExpAgeRange    string `json:"expagerange"`
	ExpGuide       string `json:"expguide"`
	CheckInTime    string `json:"checkintime"`
	CheckOutTime   string `json:"checkouttime"`
	RoomCount      string `json:"roomcount"`
	RoomType       string `json:"roomtype"`
	SubFacility    string `json:"subfacility"`
	ReservationURL string `json:"reservationurl"`
}

// TourImage is an image record from detailImage2. The first record of a
// response is the primary image.
type TourImage struct {
	ContentID     string `json:"contentid"`
	OriginImgURL  string `json:"originimgurl"`
	ImgName       string `json:"imgname"`
	SerialNum     string `json:"serialnum"`
	SmallImageURL string `json:"smallimageurl"`
}

// PetTourInfo is the pet-accompanied travel record from detailPetTour2.
type PetTourInfo struct {
	ContentID     string `json:"contentid"`
	ContentTypeID string `json:"contenttypeid"`
	ChkPetLeash   string `json:"chkpetleash"`
	ChkPetSize    string `json:"chkpetsize"`
	ChkPetPlace   string `json:"chkpetplace"`
	ChkPetFee     string `json:"chkpetfee"`
	PetInfo       string `json:"petinfo"`
	Parking       string `json:"parking"`
}

// AreaCodeItem is a region code row from areaCode2.
type AreaCodeItem struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Rnum FlexInt `json:"rnum"`
}
