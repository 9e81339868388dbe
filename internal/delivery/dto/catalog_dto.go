package dto

// MillisPerMinute converts appointment durations between the stored
// milliseconds and the minutes shown to users.
const MillisPerMinute = 60000

type Specialty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Time int64  `json:"time"`
}

// Minutes returns the appointment duration in whole minutes.
func (s Specialty) Minutes() int64 {
	return s.Time / MillisPerMinute
}

type Insurance struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Src  string `json:"src"`
}

type Procedure struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateSpecialtyRequest struct {
	Name string `json:"name" validate:"required"`
	Time int64  `json:"time" validate:"gt=0"`
}

// SpecialtyForm collects a duration in minutes; it is stored in ms.
type SpecialtyForm struct {
	Name    string `json:"name" validate:"required"`
	Minutes int64  `json:"minutes" validate:"gte=1"`
}

func (f SpecialtyForm) ToCreateRequest() CreateSpecialtyRequest {
	return CreateSpecialtyRequest{Name: f.Name, Time: f.Minutes * MillisPerMinute}
}

// DefaultInsuranceLogo is used when an insurance is added without a logo.
const DefaultInsuranceLogo = "https://placehold.co/200x200?text=Seguro"

type CreateInsuranceRequest struct {
	Name string `json:"name" validate:"required"`
	Src  string `json:"src"`
}

type InsuranceForm struct {
	Name string `json:"name" validate:"required"`
	Src  string `json:"src"`
}

func (f InsuranceForm) ToCreateRequest() CreateInsuranceRequest {
	src := f.Src
	if src == "" {
		src = DefaultInsuranceLogo
	}
	return CreateInsuranceRequest{Name: f.Name, Src: src}
}

type CreateProcedureRequest struct {
	Name string `json:"name" validate:"required"`
}

type ProcedureForm struct {
	Name string `json:"name" validate:"required"`
}

func (f ProcedureForm) ToCreateRequest() CreateProcedureRequest {
	return CreateProcedureRequest{Name: f.Name}
}

// Catalog holds the three reference collections.
type Catalog struct {
	Insurances  []Insurance `json:"insurances"`
	Specialties []Specialty `json:"specialties"`
	Procedures  []Procedure `json:"procedures"`
}

// Resolve joins p's membership ID lists against the catalog. Each resolved
// list keeps catalog order; IDs missing from the catalog are dropped.
func (c Catalog) Resolve(p ServiceProvider) ProviderDetails {
	return ProviderDetails{
		ServiceProvider: p.Clone(),
		Insurances:      filterByID(c.Insurances, p.AffiliatedInsurances, func(i Insurance) string { return i.ID }),
		SpecialtyList:   filterByID(c.Specialties, p.Specialties, func(s Specialty) string { return s.ID }),
		ProcedureList:   filterByID(c.Procedures, p.Procedures, func(x Procedure) string { return x.ID }),
	}
}

func filterByID[T any](items []T, ids []string, id func(T) string) []T {
	members := make(map[string]struct{}, len(ids))
	for _, v := range ids {
		members[v] = struct{}{}
	}

	out := make([]T, 0, len(ids))
	for _, item := range items {
		if _, ok := members[id(item)]; ok {
			out = append(out, item)
		}
	}
	return out
}
