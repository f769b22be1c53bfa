package common

import (
	"testing"
)

func TestParseMergedFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantName string
		wantRef  string
		wantOK   bool
	}{
		{
			name:     "plain reference",
			filename: "Jane Doe_000_527_962.pdf",
			wantName: "Jane Doe",
			wantRef:  "000/527/962",
			wantOK:   true,
		},
		{
			name:     "dashed suffix preserved",
			filename: "Jane Doe_000_527_962-01.pdf",
			wantName: "Jane Doe",
			wantRef:  "000/527/962-01",
			wantOK:   true,
		},
		{
			name:     "underscored suffix",
			filename: "John Smith_111_222_333_01.pdf",
			wantName: "John Smith",
			wantRef:  "111/222/333/01",
			wantOK:   true,
		},
		{
			name:     "name containing underscores",
			filename: "Unit_42 Storage_000_000_001.pdf",
			wantName: "Unit_42 Storage",
			wantRef:  "000/000/001",
			wantOK:   true,
		},
		{
			name:     "fallback client name",
			filename: "client_000_000_001.pdf",
			wantName: "client",
			wantRef:  "000/000/001",
			wantOK:   true,
		},
		{
			name:     "no reference",
			filename: "arrival notice.pdf",
			wantOK:   false,
		},
		{
			name:     "not a pdf",
			filename: "Jane Doe_000_527_962.txt",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ref, ok := ParseMergedFilename(tt.filename)
			if ok != tt.wantOK {
				t.Fatalf("ParseMergedFilename(%q) ok = %v, want %v", tt.filename, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if ref != tt.wantRef {
				t.Errorf("reference = %q, want %q", ref, tt.wantRef)
			}
		})
	}
}

func TestFilterResultFields(t *testing.T) {
	type result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   string `json:"error,omitempty"`
	}
	r := result{Success: true, Message: "merged 3 clients"}

	all := FilterResultFields(r, "")
	if len(all) != 2 {
		t.Errorf("unfiltered field count = %d, want 2", len(all))
	}

	filtered := FilterResultFields(r, "success")
	if len(filtered) != 1 {
		t.Fatalf("filtered field count = %d, want 1", len(filtered))
	}
	if filtered["success"] != true {
		t.Errorf("success = %v, want true", filtered["success"])
	}

	spaced := FilterResultFields(r, " success , message ")
	if len(spaced) != 2 {
		t.Errorf("spaced filter field count = %d, want 2", len(spaced))
	}
}
