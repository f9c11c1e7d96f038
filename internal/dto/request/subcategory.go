package request

type CreateSubcategoryRequest struct {
	SubcategoryName string `json:"subcategory_name" validate:"required,max=150"`
}
