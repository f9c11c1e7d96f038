package response

import (
	"stempede-store/internal/data/entity"

	"github.com/shopspring/decimal"
)

type SubcategoryResponse struct {
	SubcategoryID   int               `json:"subcategory_id"`
	SubcategoryName string            `json:"subcategory_name"`
	Products        []ProductResponse `json:"products,omitempty"`
}

type ProductResponse struct {
	ProductID     int             `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	LabID         int             `json:"lab_id,omitempty"`
	SubcategoryID int             `json:"subcategory_id"`
}

func SubcategoryToResponse(sub *entity.Subcategory) SubcategoryResponse {
	resp := SubcategoryResponse{
		SubcategoryID:   sub.ID,
		SubcategoryName: sub.SubcategoryName,
	}

	for _, p := range sub.Products {
		resp.Products = append(resp.Products, ProductResponse{
			ProductID:     p.ID,
			ProductName:   p.ProductName,
			Description:   p.Description,
			Price:         p.Price,
			StockQuantity: p.StockQuantity,
			LabID:         p.LabID,
			SubcategoryID: p.SubcategoryID,
		})
	}

	return resp
}

func SubcategoriesToResponse(subs []entity.Subcategory) []SubcategoryResponse {
	result := make([]SubcategoryResponse, 0, len(subs))
	for i := range subs {
		result = append(result, SubcategoryToResponse(&subs[i]))
	}
	return result
}
