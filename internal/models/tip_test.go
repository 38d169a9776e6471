package models

import "testing"

func TestTipPalette_Size(t *testing.T) {
	if len(TipPalette) != 8 {
		t.Fatalf("expected 8 palette entries, got %d", len(TipPalette))
	}
}

func TestPaletteColor_Cycles(t *testing.T) {
	for i := 0; i < 20; i++ {
		got := PaletteColor(i)
		want := TipPalette[i%8]
		if got != want {
			t.Errorf("position %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestPaletteColor_NegativeIndex(t *testing.T) {
	if got := PaletteColor(-1); got != TipPalette[7] {
		t.Errorf("expected last palette entry, got %q", got)
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr error
	}{
		{"valid", Profile{Age: 30, Gender: "Female", Goal: "Better Sleep"}, nil},
		{"zero age", Profile{Age: 0, Gender: "Female", Goal: "Better Sleep"}, ErrInvalidAge},
		{"negative age", Profile{Age: -4, Gender: "Male", Goal: "Boost Mood"}, ErrInvalidAge},
		{"blank gender", Profile{Age: 30, Gender: "  ", Goal: "Better Sleep"}, ErrGenderMissing},
		{"missing goal", Profile{Age: 30, Gender: "Male"}, ErrGoalMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.profile.Validate(); err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
