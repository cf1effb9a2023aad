package domain

import (
	"encoding/json"
	"testing"
)

func TestAmountString(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		want   string
	}{
		{"absent renders empty", Amount{}, ""},
		{"zero is a real value", NewAmount(0), "0"},
		{"integer", NewAmount(1999), "1999"},
		{"fractional", NewAmount(4.7), "4.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.amount.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAmountUSD(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		want   string
	}{
		{"absent renders empty", Amount{}, ""},
		{"cents to dollars", NewAmount(1999), "$19.99"},
		{"whole dollars keep two decimals", NewAmount(500), "$5.00"},
		{"sub dollar", NewAmount(99), "$0.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.amount.USD(); got != tt.want {
				t.Errorf("USD() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAmountMarshalJSON(t *testing.T) {
	t.Run("absent marshals as empty string", func(t *testing.T) {
		data, err := json.Marshal(Amount{})
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if string(data) != `""` {
			t.Errorf("Marshal() = %s, want \"\"", data)
		}
	})

	t.Run("present marshals as number", func(t *testing.T) {
		data, err := json.Marshal(NewAmount(1999))
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if string(data) != "1999" {
			t.Errorf("Marshal() = %s, want 1999", data)
		}
	})
}

func TestAmountUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Amount
	}{
		{"number", "1999", NewAmount(1999)},
		{"numeric string", `"19.99"`, NewAmount(19.99)},
		{"empty string sentinel", `""`, Amount{}},
		{"null", "null", Amount{}},
		{"non numeric string", `"n/a"`, Amount{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Amount
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFlatProductJSONOmitsNothing(t *testing.T) {
	data, err := json.Marshal(FlatProduct{Name: "Serum", Price: NewAmount(1999)})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded["price"] != float64(1999) {
		t.Errorf("price = %v, want 1999", decoded["price"])
	}
	if decoded["listPrice"] != "" {
		t.Errorf("absent listPrice = %v, want empty string", decoded["listPrice"])
	}
}
