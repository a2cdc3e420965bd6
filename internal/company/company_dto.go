package company

type UpdateCompanyRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	IsActive *bool  `json:"is_active"`
}

type CompanyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type CreateLocationRequest struct {
	Name     string `json:"name" binding:"required"`
	Timezone string `json:"timezone"`
	Address  string `json:"address"`
}

type UpdateLocationRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	Address  string `json:"address"`
	IsActive *bool  `json:"is_active"`
}

type LocationResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Timezone  string `json:"timezone"`
	Address   string `json:"address"`
	IsActive  bool   `json:"is_active"`
}
