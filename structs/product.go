package structs

type CreateProductRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=200"`
	Description   string `json:"description" validate:"required,min=2,max=2000"`
	Price         uint64 `json:"price" validate:"required,gt=0"` // cents
	Category      string `json:"category" validate:"required,oneof=fish shellfish crustacean smoked frozen prepared"`
	StockQuantity int    `json:"stock_quantity" validate:"gte=0"`
	IsAvailable   bool   `json:"is_available"`
	Unit          string `json:"unit" validate:"omitempty,oneof=kg piece portion"`
	ImageURL      string `json:"image_url" validate:"omitempty,url"`
	Origin        string `json:"origin" validate:"omitempty,max=100"`
}

type UpdateProductRequest struct {
	Id            string  `json:"id" validate:"required,uuid4"`
	Name          *string `json:"name" validate:"omitempty,min=2,max=200"`
	Description   *string `json:"description" validate:"omitempty,min=2,max=2000"`
	Price         *uint64 `json:"price" validate:"omitempty,gt=0"`
	Category      *string `json:"category" validate:"omitempty,oneof=fish shellfish crustacean smoked frozen prepared"`
	StockQuantity *int    `json:"stock_quantity" validate:"omitempty,gte=0"`
	IsAvailable   *bool   `json:"is_available"`
	Unit          *string `json:"unit" validate:"omitempty,oneof=kg piece portion"`
	ImageURL      *string `json:"image_url" validate:"omitempty,url"`
	Origin        *string `json:"origin" validate:"omitempty,max=100"`
}
