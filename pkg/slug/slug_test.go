package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Shoes", want: "shoes"},
		{name: "spaces", in: "Running Shoes", want: "running-shoes"},
		{name: "punctuationRuns", in: "  Nike -- Air / Max!  ", want: "nike-air-max"},
		{name: "unicodeStripped", in: "Café Crème", want: "caf-cr-me"},
		{name: "empty", in: "???", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.in); got != tt.want {
				t.Fatalf("Make(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("running-shoes") {
		t.Fatal("expected canonical slug to be valid")
	}
	if IsValid("Running Shoes") {
		t.Fatal("expected raw name to be invalid")
	}
	if IsValid("") {
		t.Fatal("expected empty slug to be invalid")
	}
}
