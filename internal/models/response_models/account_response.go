package response_models

type LoginResponse struct {
	Token string `json:"token"`
}

type AccountResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
