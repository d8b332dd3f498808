package dto

// UpdateCompanyRequest body for PUT /api/company. Nil fields unchanged.
// LogoData replaces the stored logo when present; an explicit empty slice
// clears it.
type UpdateCompanyRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	LogoData []byte  `json:"logoData"`
}

// CompanyResponse company profile. LogoData is base64 in JSON.
type CompanyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	LogoData []byte `json:"logoData,omitempty"`
}
