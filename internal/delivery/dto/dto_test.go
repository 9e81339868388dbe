package dto

import (
	"math"
	"testing"
)

func TestTotalProgress(t *testing.T) {
	tests := []struct {
		total Total
		want  float64
		str   string
	}{
		{Total{Active: 2, Total: 3}, 200.0 / 3, "2/3"},
		{Total{Active: 0, Total: 0}, 0, "0/0"},
		{Total{Active: 4, Total: 4}, 100, "4/4"},
	}
	for _, tt := range tests {
		if got := tt.total.Progress(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%v: expected %v, got %v", tt.total, tt.want, got)
		}
		if got := tt.total.String(); got != tt.str {
			t.Errorf("expected %q, got %q", tt.str, got)
		}
	}
}

func TestResolveKeepsCatalogOrder(t *testing.T) {
	catalog := Catalog{
		Specialties: []Specialty{{ID: "sp-1"}, {ID: "sp-2"}, {ID: "sp-3"}},
	}
	p := ServiceProvider{ID: "p1", Specialties: []string{"sp-3", "sp-x", "sp-1"}}

	details := catalog.Resolve(p)

	if len(details.SpecialtyList) != 2 || details.SpecialtyList[0].ID != "sp-1" || details.SpecialtyList[1].ID != "sp-3" {
		t.Fatalf("unexpected specialties %+v", details.SpecialtyList)
	}
	if details.Insurances == nil || details.ProcedureList == nil {
		t.Fatalf("empty memberships must resolve to empty lists")
	}

	details.Specialties[0] = "changed"
	if p.Specialties[0] != "sp-3" {
		t.Fatalf("resolve must not alias the provider's lists")
	}
}

func TestValidatorMessages(t *testing.T) {
	v := NewValidator()

	p := ServiceProvider{
		ID:            "p1",
		Name:          "Clínica Sur",
		Phone:         "809",
		Email:         "sur@clinica.do",
		TotalBranches: Total{Active: 3, Total: 2},
	}
	errs := v.FormatValidationErrors(v.Validate(&p))
	if errs["totalBranches.active"] != "Los activos no pueden superar el total" {
		t.Fatalf("unexpected errors %v", errs)
	}

	form := NewBranchForm("p1")
	form.Name, form.Address, form.Phone = "Sede", "Calle 1", "809"
	form.PaymentMethods = []string{"Bitcoin"}
	form.Facilities = []string{"WiFi"}
	errs = v.FormatValidationErrors(v.Validate(&form))
	if len(errs) != 1 || errs["paymentMethods[0]"] != "Método de pago no reconocido" {
		t.Fatalf("unexpected errors %v", errs)
	}
}

func TestSpecialtyFormStoresMilliseconds(t *testing.T) {
	req := SpecialtyForm{Name: "Cardiología", Minutes: 30}.ToCreateRequest()
	if req.Time != 1800000 {
		t.Fatalf("expected 1800000 ms, got %d", req.Time)
	}
	if (Specialty{Time: req.Time}).Minutes() != 30 {
		t.Fatalf("minutes must round-trip")
	}
}

func TestEditBranchFormReadsHours(t *testing.T) {
	b := Branch{
		ID:             "b1",
		ProviderID:     "p1",
		Name:           "Sede Central",
		Hours:          "Lun-Vie: 07:30 - 16:00",
		PaymentMethods: []string{"Efectivo"},
		Status:         true,
	}

	form := EditBranchForm(b)
	if form.OpeningTime != "07:30" || form.ClosingTime != "16:00" {
		t.Fatalf("unexpected times %q %q", form.OpeningTime, form.ClosingTime)
	}
	if req := form.ToCreateRequest(); req.Hours != b.Hours || req.ProviderID != "p1" {
		t.Fatalf("unexpected request %+v", req)
	}

	form.PaymentMethods[0] = "Tarjeta"
	if b.PaymentMethods[0] != "Efectivo" {
		t.Fatalf("form must not alias the branch's lists")
	}

	if form := EditBranchForm(Branch{ProviderID: "p1", Hours: "24 horas"}); form.OpeningTime != "08:00" || form.ClosingTime != "18:00" {
		t.Fatalf("unreadable hours must keep the defaults, got %q %q", form.OpeningTime, form.ClosingTime)
	}
}
