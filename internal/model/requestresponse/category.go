package requestresponse

// CategoryRequest : body of POST /api/categories and PATCH /api/categories/{type}
type CategoryRequest struct {
	Type  string `json:"type" example:"food"`
	Color string `json:"color" example:"#fcbe44"`
}

// DeleteCategoriesRequest : body of DELETE /api/categories
type DeleteCategoriesRequest struct {
	Types []string `json:"types" example:"food,health"`
}
