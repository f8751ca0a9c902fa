package response

import (
	"time"

	"experience-booking/internal/data/entity"
)

type ExperienceResponse struct {
	ID           string                  `json:"id"`
	HostID       string                  `json:"host_id"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	Location     string                  `json:"location"`
	Price        int64                   `json:"price"`
	PrivatePrice int64                   `json:"private_price"`
	MaxCapacity  int                     `json:"max_capacity"`
	Status       entity.ExperienceStatus `json:"status"`
	CreatedAt    time.Time               `json:"created_at"`
}

func ExperienceToResponse(e *entity.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:           e.ID.String(),
		HostID:       e.HostID.String(),
		Title:        e.Title,
		Description:  e.Description,
		Location:     e.Location,
		Price:        e.Price,
		PrivatePrice: e.PrivatePrice,
		MaxCapacity:  e.MaxCapacity,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
	}
}
