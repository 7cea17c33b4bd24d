package models

import "strings"

// LogoPrefix is the data-URI prefix every stored logo must carry.
const LogoPrefix = "data:image"

// CompanyProfile holds the issuer information printed in every document header.
type CompanyProfile struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	SIRET       string `json:"siret"`
	// Logo is an embedded data URI (data:image/png;base64,...), replaced wholesale on upload.
	Logo string `json:"logo"`
}

// HasLogo reports whether a logo has been uploaded.
func (p CompanyProfile) HasLogo() bool {
	return strings.HasPrefix(p.Logo, LogoPrefix)
}
