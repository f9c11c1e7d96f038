package response

import (
	"stempede-store/internal/data/entity"
)

type SupportRequestResponse struct {
	SupportID          int    `json:"support_id"`
	SupportDescription string `json:"support_description"`
	Username           string `json:"username"`
	SupportStatus      *bool  `json:"support_status"`
	OrderID            int    `json:"order_id"`
}

func SupportRequestToResponse(req *entity.SupportRequest) SupportRequestResponse {
	resp := SupportRequestResponse{
		SupportID:          req.ID,
		SupportDescription: req.SupportDescription,
		SupportStatus:      req.SupportStatus,
		OrderID:            req.OrderID,
	}
	if req.User != nil {
		resp.Username = req.User.Username
	}
	return resp
}

func SupportRequestsToResponse(reqs []entity.SupportRequest) []SupportRequestResponse {
	result := make([]SupportRequestResponse, 0, len(reqs))
	for i := range reqs {
		result = append(result, SupportRequestToResponse(&reqs[i]))
	}
	return result
}
