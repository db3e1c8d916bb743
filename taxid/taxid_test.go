package taxid

import (
	"errors"
	"testing"
)

func TestValidateCPF(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"529.982.247-25", nil},
		{"52998224725", nil},
		{"529.982.247-24", ErrChecksum},
		{"111.111.111-11", ErrRepeated},
		{"1234", ErrLength},
	}
	for _, tt := range tests {
		if err := ValidateCPF(tt.in); !errors.Is(err, tt.want) {
			t.Errorf("ValidateCPF(%q) = %v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestValidateCNPJ(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"11.222.333/0001-81", nil},
		{"11222333000181", nil},
		{"11.222.333/0001-80", ErrChecksum},
		{"00.000.000/0000-00", ErrRepeated},
		{"11.222.333/0001", ErrLength},
	}
	for _, tt := range tests {
		if err := ValidateCNPJ(tt.in); !errors.Is(err, tt.want) {
			t.Errorf("ValidateCNPJ(%q) = %v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	if k, err := Validate("52998224725"); k != CPF || err != nil {
		t.Errorf("Validate(cpf) = %v, %v", k, err)
	}
	if k, err := Validate("11222333000181"); k != CNPJ || err != nil {
		t.Errorf("Validate(cnpj) = %v, %v", k, err)
	}
	if k, err := Validate("123"); k != Unknown || !errors.Is(err, ErrLength) {
		t.Errorf("Validate(123) = %v, %v", k, err)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct{ in, want string }{
		{"52998224725", "529.982.247-25"},
		{"11222333000181", "11.222.333/0001-81"},
		{"12-3", "12-3"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
