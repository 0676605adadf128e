package printer

import (
	"bytes"
	"errors"
	"testing"
)

func TestGenerateSheetProducesPDF(t *testing.T) {
	out, err := GenerateSheet(SheetConfig{
		Codes: []string{"CELL-A1-01", "CELL-A1-02", "BOX-0007"},
		Kind:  "cell",
	})
	if err != nil {
		t.Fatalf("GenerateSheet: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header, got %q", out[:8])
	}
}

func TestGenerateSheetSpillsOntoSecondPage(t *testing.T) {
	codes := make([]string, 0, 45)
	for i := 0; i < 45; i++ {
		codes = append(codes, "CELL-"+string(rune('A'+i%26)))
	}
	// Default grid is 4x10 = 40 per page, so 45 labels need two pages.
	out, err := GenerateSheet(SheetConfig{Codes: codes})
	if err != nil {
		t.Fatalf("GenerateSheet: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("output does not start with a PDF header")
	}

	single, err := GenerateSheet(SheetConfig{Codes: codes[:1]})
	if err != nil {
		t.Fatalf("GenerateSheet: %v", err)
	}
	if len(out) <= len(single) {
		t.Fatalf("45-label sheet (%d bytes) should be larger than a single label (%d bytes)", len(out), len(single))
	}
}

func TestGenerateSheetRejectsEmpty(t *testing.T) {
	if _, err := GenerateSheet(SheetConfig{}); !errors.Is(err, ErrNoCodes) {
		t.Fatalf("expected ErrNoCodes, got %v", err)
	}
}
