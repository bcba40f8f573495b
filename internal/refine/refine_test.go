package refine

import (
	"reflect"
	"testing"
)

func TestRefine_Deduplicates(t *testing.T) {
	r := NewRefiner()

	drafts := []string{
		"The customer shall book a washing machine",
		"The customer shall book a washing machine.",
		"the customer shall book a washing machine",
	}
	refined := r.Refine(drafts)

	if len(refined) != 1 {
		t.Fatalf("Expected punctuation and case variants to collapse, got %d: %v", len(refined), refined)
	}
	if refined[0] != "The customer shall book a washing machine." {
		t.Errorf("Unexpected survivor: %q", refined[0])
	}
}

func TestRefine_DropsShortDrafts(t *testing.T) {
	r := NewRefiner()

	refined := r.Refine([]string{
		"The system shall run",
		"The system shall generate daily reports",
	})
	if len(refined) != 1 {
		t.Fatalf("Expected four-word draft to be dropped, got %v", refined)
	}
	if refined[0] != "The system shall generate daily reports." {
		t.Errorf("Unexpected result: %q", refined[0])
	}
}

func TestRefine_PrefixesUnapprovedLead(t *testing.T) {
	r := NewRefiner()

	refined := r.Refine([]string{"machines report faults to the owner"})
	if len(refined) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(refined))
	}
	if refined[0] != "The system shall machines report faults to the owner." {
		t.Errorf("Unexpected result: %q", refined[0])
	}
}

func TestRefine_KeepsApprovedLeads(t *testing.T) {
	r := NewRefiner()

	drafts := []string{
		"The customer shall book a washing machine",
		"The customer should receive a notification by email",
		"The administrator shall monitor the payment system",
		"The administrator should review weekly usage reports",
		"The system shall track machine availability in real time",
	}
	refined := r.Refine(drafts)
	if len(refined) != len(drafts) {
		t.Fatalf("Expected all drafts to survive, got %d", len(refined))
	}
	for i, want := range drafts {
		if refined[i] != want+"." {
			t.Errorf("Draft %d: got %q, want %q", i, refined[i], want+".")
		}
	}
}

func TestRefine_RepairsTemplateArtifacts(t *testing.T) {
	r := NewRefiner()

	refined := r.Refine([]string{
		"The system shall shall notify the administrator",
		"The customer should should receive a receipt",
	})
	want := []string{
		"The system shall notify the administrator.",
		"The customer should receive a receipt.",
	}
	if !reflect.DeepEqual(refined, want) {
		t.Errorf("Got %v, want %v", refined, want)
	}
}

func TestRefine_PreservesOrder(t *testing.T) {
	r := NewRefiner()

	drafts := []string{
		"The administrator shall monitor the payment system",
		"The customer shall book a washing machine",
	}
	refined := r.Refine(drafts)
	if len(refined) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(refined))
	}
	if refined[0] != "The administrator shall monitor the payment system." {
		t.Errorf("Order not preserved: %v", refined)
	}
}

func TestRefine_Idempotent(t *testing.T) {
	r := NewRefiner()

	once := r.Refine([]string{
		"The customer shall book a washing machine",
		"machines report faults to the owner",
	})
	twice := r.Refine(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Refine not idempotent: %v vs %v", once, twice)
	}
}

func TestRefine_EmptyInput(t *testing.T) {
	r := NewRefiner()
	if got := r.Refine(nil); len(got) != 0 {
		t.Errorf("Expected empty output, got %v", got)
	}
}
