package request

type CreateExperienceRequest struct {
	Title        string `json:"title" validate:"required,min=2,max=200"`
	Description  string `json:"description" validate:"required,min=10"`
	Location     string `json:"location" validate:"required,min=2,max=200"`
	Price        int64  `json:"price" validate:"required,min=1000"`
	PrivatePrice int64  `json:"private_price" validate:"required,min=1000"`
	MaxCapacity  int    `json:"max_capacity" validate:"required,min=1,max=100"`
}

type UpdateExperienceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active rejected"`
}
