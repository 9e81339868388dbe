package listing

import (
	"strings"
	"testing"

	"provider-directory/internal/delivery/dto"
)

func providers() []dto.ServiceProvider {
	return []dto.ServiceProvider{
		{ID: "p1", Name: "Clínica Sur", TotalBranches: dto.Total{Active: 2, Total: 3}},
		{ID: "p2", Name: "Centro Médico Norte"},
		{ID: "p3", Name: "Hospital General"},
		{ID: "p4", Name: "CLÍNICA ESTE"},
	}
}

func TestSearchIncludesEverySubstringMatch(t *testing.T) {
	all := providers()
	c := New(all)

	for _, p := range all {
		runes := []rune(p.Name)
		for i := 0; i < len(runes); i++ {
			for j := i + 1; j <= len(runes); j++ {
				term := string(runes[i:j])
				for _, variant := range []string{term, strings.ToUpper(term), strings.ToLower(term)} {
					c.Search(variant)
					if !contains(c.Filtered(), p.ID) {
						t.Fatalf("search %q dropped %q", variant, p.Name)
					}
				}
			}
		}
	}
}

func TestSearchWithoutMatches(t *testing.T) {
	c := New(providers())
	c.Search("zzz-no-match")

	if !c.Empty() || len(c.Filtered()) != 0 {
		t.Fatalf("expected empty result, got %v", c.Filtered())
	}
}

func TestSearchMatchesNameOnly(t *testing.T) {
	c := New([]dto.ServiceProvider{{ID: "p9", Name: "Sede", Email: "clinica@example.com"}})
	c.Search("clinica")
	if !c.Empty() {
		t.Fatalf("search must look at the name only")
	}
}

func TestEmptyTermShowsAll(t *testing.T) {
	c := New(providers())
	c.Search("sur")
	c.Search("")
	if len(c.Filtered()) != 4 {
		t.Fatalf("expected all providers, got %d", len(c.Filtered()))
	}
}

func TestSetModeKeepsFilter(t *testing.T) {
	c := New(providers())
	c.Search("clínica")
	before := c.Filtered()

	c.SetMode(ModeTable)

	if c.Mode() != ModeTable {
		t.Fatalf("expected table mode")
	}
	if c.Term() != "clínica" || len(c.Filtered()) != len(before) {
		t.Fatalf("mode switch changed the filter: %v", c.Filtered())
	}
}

func TestAddReappliesFilter(t *testing.T) {
	c := New(providers())
	c.Search("sur")
	c.Add(dto.ServiceProvider{ID: "p5", Name: "Laboratorio Sur"})
	c.Add(dto.ServiceProvider{ID: "p6", Name: "Farmacia Oeste"})

	if !contains(c.Filtered(), "p5") || contains(c.Filtered(), "p6") {
		t.Fatalf("unexpected filtered set %v", c.Filtered())
	}
	if len(c.All()) != 6 {
		t.Fatalf("expected 6 providers, got %d", len(c.All()))
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("TABLE"); err != nil || m != ModeTable {
		t.Fatalf("expected table, got %v %v", m, err)
	}
	if m, err := ParseMode("grid"); err != nil || m != ModeCard {
		t.Fatalf("expected grid to mean card, got %v %v", m, err)
	}
	if _, err := ParseMode("mosaic"); err == nil {
		t.Fatalf("expected error")
	}
}

func contains(list []dto.ServiceProvider, id string) bool {
	for _, p := range list {
		if p.ID == id {
			return true
		}
	}
	return false
}
