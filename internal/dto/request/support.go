package request

type UpdateSupportStatusRequest struct {
	SupportStatus *bool `json:"support_status" validate:"required"`
}
