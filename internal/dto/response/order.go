package response

import (
	"stempede-store/internal/data/entity"

	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	OrderID          int                   `json:"order_id"`
	CustomerUsername string                `json:"customer_username"`
	OrderDate        string                `json:"order_date"`
	TotalAmount      decimal.Decimal       `json:"total_amount"`
	DeliveryStatus   string                `json:"delivery_status"`
	SupportStatus    bool                  `json:"support_status"`
	OrderDetails     []OrderDetailResponse `json:"order_details"`
}

type OrderDetailResponse struct {
	OrderDetailID      int             `json:"order_detail_id"`
	ProductID          int             `json:"product_id"`
	ProductName        string          `json:"product_name"`
	ProductDescription string          `json:"product_description"`
	Quantity           int             `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
}

type DeliveryStatusesResponse struct {
	OrderID  int      `json:"order_id"`
	Statuses []string `json:"statuses"`
}

// OrderToResponse flattens an order. User and OrderDetails.Product are read
// only when they were loaded.
func OrderToResponse(order *entity.Order) OrderResponse {
	resp := OrderResponse{
		OrderID:        order.ID,
		OrderDate:      order.OrderDate.Format("2006-01-02"),
		TotalAmount:    order.TotalAmount,
		DeliveryStatus: string(order.DeliveryStatus),
		SupportStatus:  order.SupportStatus,
		OrderDetails:   make([]OrderDetailResponse, 0, len(order.OrderDetails)),
	}

	if order.User != nil {
		resp.CustomerUsername = order.User.Username
	}

	for _, detail := range order.OrderDetails {
		item := OrderDetailResponse{
			OrderDetailID:      detail.ID,
			ProductID:          detail.ProductID,
			ProductDescription: detail.ProductDescription,
			Quantity:           detail.Quantity,
			Price:              detail.Price,
		}
		if detail.Product != nil {
			item.ProductName = detail.Product.ProductName
		}
		resp.OrderDetails = append(resp.OrderDetails, item)
	}

	return resp
}

func OrdersToResponse(orders []entity.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, OrderToResponse(&orders[i]))
	}
	return result
}
