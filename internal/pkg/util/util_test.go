package util

import (
	"errors"
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fish", "fish"},
		{"Fish & Chips", "fish-chips"},
		{"  Crème Brûlée  ", "creme-brulee"},
		{"Mom's apple-pie", "moms-apple-pie"},
		{"Борщ", ""},
		{"Pasta   al -- dente", "pasta-al-dente"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"fish": true, "fish-1": true}
	got, err := UniqueSlug("fish", func(s string) (bool, error) { return taken[s], nil })
	if err != nil {
		t.Fatalf("UniqueSlug: %v", err)
	}
	if got != "fish-2" {
		t.Errorf("UniqueSlug = %q, want fish-2", got)
	}

	got, _ = UniqueSlug("", func(string) (bool, error) { return false, nil })
	if got != "recipe" {
		t.Errorf("UniqueSlug(empty) = %q, want recipe", got)
	}

	boom := errors.New("boom")
	if _, err = UniqueSlug("x", func(string) (bool, error) { return false, boom }); !errors.Is(err, boom) {
		t.Errorf("UniqueSlug error = %v, want boom", err)
	}
}

func TestNormalizeIngredients(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr string
	}{
		{name: "empty", in: "", want: ""},
		{name: "normalizes", in: "Tomato - 2\nGoat Cheese -100 g", want: "tomato - 2\ngoat cheese - 100 g"},
		{name: "windows newlines", in: "Salt - pinch\r\nPepper - 1 tsp", want: "salt - pinch\npepper - 1 tsp"},
		{name: "quantity keeps dashes", in: "Eggs - 2-3", want: "eggs - 2-3"},
		{name: "no dash", in: "Tomato 2", wantErr: "Each line must be in format: ingredient - quantity"},
		{name: "bad name", in: "Tomato2 - 1", wantErr: "Invalid ingredient name: Tomato2"},
		{name: "blank name", in: " - 1", wantErr: "Invalid ingredient name: "},
		{name: "missing quantity", in: "Basil - ", wantErr: "Quantity is missing for ingredient: Basil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeIngredients(tt.in)
			if tt.wantErr != "" {
				var ie *IngredientError
				if !errors.As(err, &ie) {
					t.Fatalf("err = %v, want IngredientError", err)
				}
				if ie.Message != tt.wantErr {
					t.Errorf("message = %q, want %q", ie.Message, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseIngredientNames(t *testing.T) {
	got := ParseIngredientNames("\nMilk, chocolate,,ice-cream\n")
	want := []string{"milk", "chocolate", "ice-cream"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := ParseIngredientNames(""); len(got) != 0 {
		t.Errorf("empty input gave %v", got)
	}
}

func TestValidateDTO(t *testing.T) {
	type payload struct {
		Rating float64 `validate:"gte=1,lte=5"`
	}
	if err := ValidateDTO(&payload{Rating: 3}); err != nil {
		t.Fatalf("valid payload: %v", err)
	}
	err := ValidateDTO(&payload{Rating: 7})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if ve.Field != "rating" || ve.Tag != "lte" {
		t.Errorf("got %+v", ve)
	}
}

func TestStrSliceToUInt64Slice(t *testing.T) {
	got, err := StrSliceToUInt64Slice([]string{"3", "1"})
	if err != nil || !reflect.DeepEqual(got, []uint64{3, 1}) {
		t.Errorf("got %v, %v", got, err)
	}
	if _, err = StrSliceToUInt64Slice([]string{"x"}); err == nil {
		t.Error("expected error")
	}
}

func TestIngredientNames(t *testing.T) {
	got := IngredientNames("milk - 1 l\nbrown sugar - 2 tbsp")
	want := []string{"milk", "brown sugar"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if got := IngredientNames(""); len(got) != 0 {
		t.Fatalf("empty input returned %v", got)
	}
}
