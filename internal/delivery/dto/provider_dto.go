package dto

import "fmt"

// Total is an active/total counter pair.
type Total struct {
	Active int `json:"active" validate:"gte=0,ltefield=Total"`
	Total  int `json:"total" validate:"gte=0"`
}

// String renders the pair as "active/total".
func (t Total) String() string {
	return fmt.Sprintf("%d/%d", t.Active, t.Total)
}

// Progress returns active as a percentage of total, 0 when total is 0.
func (t Total) Progress() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Active) / float64(t.Total) * 100
}

const (
	StatusActive   = "Activo"
	StatusInactive = "Inactivo"
)

// ServiceProvider is the provider record as exchanged with the resource
// server. Membership sets are ID lists referencing separate collections.
type ServiceProvider struct {
	ID                   string   `json:"id" validate:"required"`
	Src                  string   `json:"src"`
	Name                 string   `json:"name" validate:"required"`
	Phone                string   `json:"phone" validate:"required"`
	WhatsApp             string   `json:"whatsApp"`
	Instagram            string   `json:"instagram"`
	Email                string   `json:"email" validate:"required,email"`
	Website              string   `json:"website" validate:"omitempty,url"`
	LinkedIn             string   `json:"linkedIn" validate:"omitempty,url"`
	Status               string   `json:"status"`
	TotalBranches        Total    `json:"totalBranches"`
	TotalDoctors         Total    `json:"totalDoctors"`
	AffiliatedInsurances []string `json:"affiliatedInsurances"`
	Specialties          []string `json:"specialties"`
	Procedures           []string `json:"procedures"`
}

// Clone returns a deep copy.
func (p ServiceProvider) Clone() ServiceProvider {
	c := p
	c.AffiliatedInsurances = cloneStrings(p.AffiliatedInsurances)
	c.Specialties = cloneStrings(p.Specialties)
	c.Procedures = cloneStrings(p.Procedures)
	return c
}

func (p ServiceProvider) IsActive() bool {
	return p.Status == StatusActive
}

// CreateProviderRequest is the payload of POST /providers.
type CreateProviderRequest struct {
	Src                  string   `json:"src"`
	Name                 string   `json:"name" validate:"required"`
	Phone                string   `json:"phone" validate:"required"`
	WhatsApp             string   `json:"whatsApp"`
	Instagram            string   `json:"instagram"`
	Email                string   `json:"email" validate:"required,email"`
	Website              string   `json:"website" validate:"omitempty,url"`
	LinkedIn             string   `json:"linkedIn" validate:"omitempty,url"`
	Status               string   `json:"status"`
	TotalBranches        Total    `json:"totalBranches"`
	TotalDoctors         Total    `json:"totalDoctors"`
	AffiliatedInsurances []string `json:"affiliatedInsurances"`
	Specialties          []string `json:"specialties"`
	Procedures           []string `json:"procedures"`
}

// NewProviderRequest fills the defaults used when a provider is created
// from the basic contact fields only.
func NewProviderRequest(name, phone, email, website string) CreateProviderRequest {
	return CreateProviderRequest{
		Name:                 name,
		Phone:                phone,
		Email:                email,
		Website:              website,
		Status:               StatusActive,
		AffiliatedInsurances: []string{},
		Specialties:          []string{},
		Procedures:           []string{},
	}
}

// ProviderDetails is a provider with its membership sets resolved.
type ProviderDetails struct {
	ServiceProvider
	Insurances    []Insurance `json:"insurances"`
	SpecialtyList []Specialty `json:"specialtyList"`
	ProcedureList []Procedure `json:"procedureList"`
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
