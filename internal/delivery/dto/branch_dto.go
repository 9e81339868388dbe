package dto

import "fmt"

type BranchSpecialty struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Procedures []Procedure `json:"procedures"`
}

// Branch belongs to exactly one provider. Hours is a display string built
// from the opening and closing times when the branch is created.
type Branch struct {
	ID             string            `json:"id"`
	ProviderID     string            `json:"providerId"`
	Name           string            `json:"name"`
	Address        string            `json:"address"`
	Phone          string            `json:"phone"`
	Hours          string            `json:"hours"`
	Status         bool              `json:"status"`
	PaymentMethods []string          `json:"paymentMethods"`
	Facilities     []string          `json:"facilities"`
	Insurances     []string          `json:"insurances"`
	Specialties    []BranchSpecialty `json:"specialties"`
}

// BranchForm is what the add-branch dialog collects. Opening and closing
// times never reach the server; they are folded into Hours.
type BranchForm struct {
	Name           string   `json:"name" validate:"required"`
	ProviderID     string   `json:"providerId" validate:"required"`
	Address        string   `json:"address" validate:"required"`
	Phone          string   `json:"phone" validate:"required"`
	OpeningTime    string   `json:"openingTime" validate:"required,datetime=15:04"`
	ClosingTime    string   `json:"closingTime" validate:"required,datetime=15:04"`
	PaymentMethods []string `json:"paymentMethods" validate:"min=1,dive,payment_method"`
	Insurances     []string `json:"insurances"`
	Facilities     []string `json:"facilities" validate:"dive,facility"`
	Status         bool     `json:"status"`
}

// NewBranchForm returns the dialog defaults for providerID.
func NewBranchForm(providerID string) BranchForm {
	return BranchForm{
		ProviderID:     providerID,
		OpeningTime:    "08:00",
		ClosingTime:    "18:00",
		PaymentMethods: []string{},
		Insurances:     []string{},
		Facilities:     []string{},
		Status:         true,
	}
}

// EditBranchForm fills the dialog from a stored branch. Times that cannot
// be read back from Hours keep the defaults.
func EditBranchForm(b Branch) BranchForm {
	form := NewBranchForm(b.ProviderID)
	form.Name = b.Name
	form.Address = b.Address
	form.Phone = b.Phone
	form.Status = b.Status
	form.PaymentMethods = cloneStrings(b.PaymentMethods)
	form.Facilities = cloneStrings(b.Facilities)
	form.Insurances = cloneStrings(b.Insurances)

	var opening, closing string
	if n, _ := fmt.Sscanf(b.Hours, "Lun-Vie: %s - %s", &opening, &closing); n == 2 {
		form.OpeningTime, form.ClosingTime = opening, closing
	}
	return form
}

func (f BranchForm) Hours() string {
	return fmt.Sprintf("Lun-Vie: %s - %s", f.OpeningTime, f.ClosingTime)
}

func (f BranchForm) ToCreateRequest() CreateBranchRequest {
	insurances := f.Insurances
	if insurances == nil {
		insurances = []string{}
	}
	facilities := f.Facilities
	if facilities == nil {
		facilities = []string{}
	}
	return CreateBranchRequest{
		ProviderID:     f.ProviderID,
		Name:           f.Name,
		Address:        f.Address,
		Phone:          f.Phone,
		Hours:          f.Hours(),
		Status:         f.Status,
		PaymentMethods: cloneStrings(f.PaymentMethods),
		Facilities:     cloneStrings(facilities),
		Insurances:     cloneStrings(insurances),
	}
}

// CreateBranchRequest is the payload of POST /branches.
type CreateBranchRequest struct {
	ProviderID     string            `json:"providerId" validate:"required"`
	Name           string            `json:"name" validate:"required"`
	Address        string            `json:"address" validate:"required"`
	Phone          string            `json:"phone" validate:"required"`
	Hours          string            `json:"hours"`
	Status         bool              `json:"status"`
	PaymentMethods []string          `json:"paymentMethods" validate:"min=1,dive,payment_method"`
	Facilities     []string          `json:"facilities" validate:"dive,facility"`
	Insurances     []string          `json:"insurances"`
	Specialties    []BranchSpecialty `json:"specialties,omitempty"`
}

// UpdateBranchRequest is the payload of PUT /branches/{id}.
type UpdateBranchRequest = CreateBranchRequest
