package domain

import "testing"

func TestSavedOn(t *testing.T) {
	tests := []struct {
		name    string
		savedAt string
		want    string
	}{
		{"naive iso with microseconds", "2023-05-01T10:02:03.123456", "May 1, 2023"},
		{"naive iso without fraction", "2023-05-01T10:02:03", "May 1, 2023"},
		{"rfc3339", "2023-05-01T10:02:03Z", "May 1, 2023"},
		{"unparseable falls back to raw", "yesterday", "yesterday"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := SavedRecipe{SavedAt: tt.savedAt}
			if got := r.SavedOn(); got != tt.want {
				t.Errorf("SavedOn() = %q, want %q", got, tt.want)
			}
		})
	}
}
