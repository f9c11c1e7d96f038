package request

type UpdateDeliveryStatusRequest struct {
	DeliveryStatus string `json:"delivery_status" validate:"required"`
}
