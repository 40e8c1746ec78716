package search

import (
	"fmt"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/calendar"
	"hotelbooking/internal/pkg/money"
	"hotelbooking/internal/pkg/validator"

	"github.com/shopspring/decimal"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// SearchParams is the query string of the search endpoint.
type SearchParams struct {
	Keyword    string `form:"keyword"`
	City       string `form:"city"`
	CheckIn    string `form:"check_in"`
	CheckOut   string `form:"check_out"`
	MinPrice   string `form:"min_price"`
	MaxPrice   string `form:"max_price"`
	StarRating []int  `form:"star_rating" validate:"dive,gte=1,lte=5"`
	RoomType   string `form:"room_type"`
	Limit      int    `form:"limit" validate:"gte=0"`
	Offset     int    `form:"offset" validate:"gte=0"`
}

type SearchQuery struct {
	Keyword     string
	City        string
	StarRatings []int
	RoomType    domain.RoomType
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Window      *calendar.StayWindow
	Limit       int
	Offset      int
}

// ParseSearch turns raw query parameters into a SearchQuery.
func ParseSearch(p SearchParams) (SearchQuery, error) {
	if errs := validator.Validate(p); errs != nil {
		return SearchQuery{}, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	q := SearchQuery{
		Keyword:     p.Keyword,
		City:        p.City,
		StarRatings: p.StarRating,
		Limit:       p.Limit,
		Offset:      p.Offset,
	}

	w, err := calendar.ParseStayWindow(p.CheckIn, p.CheckOut)
	if err != nil {
		return SearchQuery{}, err
	}
	q.Window = w

	if p.RoomType != "" {
		rt, err := domain.ParseRoomType(p.RoomType)
		if err != nil {
			return SearchQuery{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		q.RoomType = rt
	}

	if q.MinPrice, err = money.ParseOptional(p.MinPrice); err != nil {
		return SearchQuery{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if q.MaxPrice, err = money.ParseOptional(p.MaxPrice); err != nil {
		return SearchQuery{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		return SearchQuery{}, fmt.Errorf("%w: min_price greater than max_price", ErrValidation)
	}
	return q, nil
}

// HotelHit is one search result: a hotel and its cheapest qualifying room.
type HotelHit struct {
	HotelID       int64           `json:"hotel_id"`
	Name          string          `json:"name"`
	City          string          `json:"city"`
	Address       string          `json:"address"`
	StarRating    int             `json:"star_rating"`
	Score         float64         `json:"score"`
	CoverURL      string          `json:"cover_url,omitempty"`
	RoomID        int64           `json:"room_id"`
	MinPrice      decimal.Decimal `json:"min_price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	LeftStock     int             `json:"left_stock"`
}

type RoomView struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	RoomType      domain.RoomType  `json:"room_type"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice decimal.Decimal  `json:"original_price"`
	Cancellable   bool             `json:"cancellable"`
	AvgPrice      *decimal.Decimal `json:"avg_price"`
}

type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type HotelDetail struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	City        string              `json:"city"`
	Address     string              `json:"address"`
	Description string              `json:"description,omitempty"`
	StarRating  int                 `json:"star_rating"`
	Score       float64             `json:"score"`
	CityRank    int64               `json:"city_rank"`
	GlobalRank  int64               `json:"global_rank"`
	Media       []domain.HotelMedia `json:"media"`
	Rooms       []RoomView          `json:"rooms"`
	TopKeywords []KeywordCount      `json:"top_keywords"`
}
