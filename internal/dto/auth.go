package dto

type LoginRequest struct {
	Email    string `json:"email" example:"admin@example.com"`
	Password string `json:"password" example:"secret123"`
}

type LoginResponse struct {
	UserID          string `json:"userId"`
	Role            string `json:"role"`
	AccessToken     string `json:"accessToken"`
	AccessExpiresIn int64  `json:"accessExpiresIn"`
}

type SupportMessageRequest struct {
	Name    string  `json:"name" example:"Ana"`
	Email   string  `json:"email" example:"ana@example.com"`
	Phone   *string `json:"phone"`
	Subject *string `json:"subject"`
	Message string  `json:"message"`
}
