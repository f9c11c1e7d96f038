package request

// UpdateProfileRequest only replaces the fields that are present. Username
// may be echoed back but never changed.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=150"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=255"`
}
