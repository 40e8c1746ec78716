package search

import (
	"context"
	"errors"
	"sort"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/calendar"
	"hotelbooking/internal/pkg/money"
	"hotelbooking/internal/repository"
)

const topKeywordCount = 4

type Service struct {
	avail   AvailabilityRepository
	hotels  HotelRepository
	rooms   RoomRepository
	reviews ReviewRepository
	now     func() time.Time
}

func NewService(avail AvailabilityRepository, hotels HotelRepository, rooms RoomRepository, reviews ReviewRepository) *Service {
	return &Service{avail: avail, hotels: hotels, rooms: rooms, reviews: reviews, now: time.Now}
}

// Search returns published hotels that have at least one qualifying room,
// best score first. With a stay window a room qualifies only if it has
// stock on every night of the window.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]HotelHit, error) {
	matches, err := s.avail.MatchRooms(ctx, repository.RoomFilter{
		Keyword:     q.Keyword,
		City:        q.City,
		StarRatings: q.StarRatings,
		RoomType:    string(q.RoomType),
		MinPrice:    q.MinPrice,
		MaxPrice:    q.MaxPrice,
		Window:      q.Window,
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []HotelHit{}, nil
	}

	best := cheapestPerHotel(matches)

	hotelIDs := make([]int64, 0, len(best))
	roomIDs := make([]int64, 0, len(best))
	for id, m := range best {
		hotelIDs = append(hotelIDs, id)
		roomIDs = append(roomIDs, m.RoomID)
	}

	hotels, err := s.hotels.ListByIDs(ctx, hotelIDs)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.ListByIDs(ctx, roomIDs)
	if err != nil {
		return nil, err
	}
	roomByID := make(map[int64]domain.Room, len(rooms))
	for _, r := range rooms {
		roomByID[r.ID] = r
	}

	stockDay := calendar.FromTime(s.now())
	if q.Window != nil {
		stockDay = q.Window.CheckIn
	}
	stock, err := s.avail.StockOn(ctx, roomIDs, stockDay)
	if err != nil {
		return nil, err
	}

	hits := make([]HotelHit, 0, len(hotels))
	for _, h := range hotels {
		m, ok := best[h.ID]
		if !ok {
			continue
		}
		hit := HotelHit{
			HotelID:       h.ID,
			Name:          h.Name,
			City:          h.City,
			Address:       h.Address,
			StarRating:    h.StarRating,
			Score:         h.Score,
			RoomID:        m.RoomID,
			MinPrice:      money.Round(m.MinPrice),
			OriginalPrice: money.Round(roomByID[m.RoomID].OriginalPrice),
			LeftStock:     stock[m.RoomID],
		}
		if len(h.Media) > 0 {
			hit.CoverURL = h.Media[0].URL
		}
		hits = append(hits, hit)
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].HotelID < hits[j].HotelID
	})

	return page(hits, q.Limit, q.Offset), nil
}

// cheapestPerHotel keeps, per hotel, the room with the lowest qualifying
// price; equal prices go to the lower room id.
func cheapestPerHotel(matches []repository.RoomMatch) map[int64]repository.RoomMatch {
	best := make(map[int64]repository.RoomMatch)
	for _, m := range matches {
		cur, ok := best[m.HotelID]
		if !ok ||
			m.MinPrice.LessThan(cur.MinPrice) ||
			(m.MinPrice.Equal(cur.MinPrice) && m.RoomID < cur.RoomID) {
			best[m.HotelID] = m
		}
	}
	return best
}

func page(hits []HotelHit, limit, offset int) []HotelHit {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(hits) {
		return []HotelHit{}
	}
	end := offset + limit
	if end > len(hits) {
		end = len(hits)
	}
	return hits[offset:end]
}

// Detail describes one published hotel. With a window only rooms in stock
// on every night are listed and their average runs over the window.
func (s *Service) Detail(ctx context.Context, hotelID int64, w *calendar.StayWindow) (*HotelDetail, error) {
	h, err := s.hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if h.Status != domain.HotelPublished {
		return nil, ErrNotFound
	}

	higherInCity, err := s.hotels.CountHigherScored(ctx, h, h.City)
	if err != nil {
		return nil, err
	}
	higher, err := s.hotels.CountHigherScored(ctx, h, "")
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListByHotel(ctx, h.ID)
	if err != nil {
		return nil, err
	}
	avgs, err := s.avail.RoomAverages(ctx, h.ID, w)
	if err != nil {
		return nil, err
	}

	views := make([]RoomView, 0, len(rooms))
	for _, r := range rooms {
		avg, ok := avgs[r.ID]
		if w != nil && !ok {
			continue
		}
		v := RoomView{
			ID:            r.ID,
			Name:          r.Name,
			RoomType:      r.RoomType,
			Price:         money.Round(r.Price),
			OriginalPrice: money.Round(r.OriginalPrice),
			Cancellable:   r.Cancellable,
		}
		if ok {
			rounded := money.Round(avg)
			v.AvgPrice = &rounded
		}
		views = append(views, v)
	}

	texts, err := s.reviews.ListContents(ctx, h.ID)
	if err != nil {
		return nil, err
	}

	media := h.Media
	if media == nil {
		media = []domain.HotelMedia{}
	}

	return &HotelDetail{
		ID:          h.ID,
		Name:        h.Name,
		City:        h.City,
		Address:     h.Address,
		Description: h.Description,
		StarRating:  h.StarRating,
		Score:       h.Score,
		CityRank:    higherInCity + 1,
		GlobalRank:  higher + 1,
		Media:       media,
		Rooms:       views,
		TopKeywords: TopKeywords(texts, topKeywordCount),
	}, nil
}
