package hours

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  float64
		found bool
	}{
		{name: "integer", text: "10", want: 10.0, found: true},
		{name: "decimal", text: "10.5", want: 10.5, found: true},
		{name: "range averages", text: "10-12", want: 11.0, found: true},
		{name: "decimal range", text: "10.5-11.5", want: 11.0, found: true},
		{name: "half fraction", text: "6½", want: 6.5, found: true},
		{name: "quarter fraction", text: "10¼", want: 10.25, found: true},
		{name: "three quarter fraction", text: "2¾", want: 2.75, found: true},
		{name: "bare fraction", text: "½", want: 0.5, found: true},
		{name: "range with bad upper bound keeps lower", text: "10-abc", want: 10.0, found: true},
		{name: "surrounding whitespace", text: " 8 ", want: 8.0, found: true},
		{name: "letters", text: "abc", found: false},
		{name: "empty", text: "", found: false},
		{name: "range with no parseable bound", text: "abc-def", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Parse(tt.text)
			if found != tt.found {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.text, found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
