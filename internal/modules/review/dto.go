package review

type CreateReviewRequest struct {
	HotelID int64  `json:"hotel_id" validate:"required,gt=0"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Content string `json:"content" validate:"max=4000"`
}
