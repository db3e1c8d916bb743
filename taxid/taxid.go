// Package taxid validates brazilian taxpayer identifiers: CPF for individuals
// and CNPJ for companies.
package taxid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLength   = errors.New("wrong number of digits")
	ErrRepeated = errors.New("all digits are equal")
	ErrChecksum = errors.New("check digits do not match")
)

// Kind of identifier.
type Kind int

const (
	Unknown Kind = iota
	CPF
	CNPJ
)

func (k Kind) String() string {
	switch k {
	case CPF:
		return "CPF"
	case CNPJ:
		return "CNPJ"
	default:
		return "unknown"
	}
}

// digits returns the digits of s, dropping punctuation.
func digits(s string) []int {
	var d []int
	for _, r := range s {
		if r >= '0' && r <= '9' {
			d = append(d, int(r-'0'))
		}
	}
	return d
}

// check computes a modulo 11 check digit of d with the given weights.
func check(d []int, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += d[i] * w
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func repeated(d []int) bool {
	for _, v := range d[1:] {
		if v != d[0] {
			return false
		}
	}
	return true
}

var (
	cpfWeights1  = []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	cpfWeights2  = []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidateCPF checks a CPF, formatted ("529.982.247-25") or not.
func ValidateCPF(s string) error {
	d := digits(s)
	if len(d) != 11 {
		return fmt.Errorf("CPF %q: %w", s, ErrLength)
	}
	if repeated(d) {
		return fmt.Errorf("CPF %q: %w", s, ErrRepeated)
	}
	if check(d, cpfWeights1) != d[9] || check(d, cpfWeights2) != d[10] {
		return fmt.Errorf("CPF %q: %w", s, ErrChecksum)
	}
	return nil
}

// ValidateCNPJ checks a CNPJ, formatted ("11.222.333/0001-81") or not.
func ValidateCNPJ(s string) error {
	d := digits(s)
	if len(d) != 14 {
		return fmt.Errorf("CNPJ %q: %w", s, ErrLength)
	}
	if repeated(d) {
		return fmt.Errorf("CNPJ %q: %w", s, ErrRepeated)
	}
	if check(d, cnpjWeights1) != d[12] || check(d, cnpjWeights2) != d[13] {
		return fmt.Errorf("CNPJ %q: %w", s, ErrChecksum)
	}
	return nil
}

// Validate detects the kind of identifier from its number of digits, and
// validates it.
func Validate(s string) (Kind, error) {
	switch len(digits(s)) {
	case 11:
		return CPF, ValidateCPF(s)
	case 14:
		return CNPJ, ValidateCNPJ(s)
	}
	return Unknown, fmt.Errorf("%q: %w", s, ErrLength)
}

// Format returns the canonical punctuation of a CPF or CNPJ, or s unchanged
// if it has neither length.
func Format(s string) string {
	var b strings.Builder
	for _, v := range digits(s) {
		b.WriteByte(byte('0' + v))
	}
	n := b.String()
	switch len(n) {
	case 11:
		return n[:3] + "." + n[3:6] + "." + n[6:9] + "-" + n[9:]
	case 14:
		return n[:2] + "." + n[2:5] + "." + n[5:8] + "/" + n[8:12] + "-" + n[12:]
	}
	return s
}
