// Package bloodtype models the eight ABO/Rh blood types and the donor to
// recipient compatibility rules between them. Everything here is pure and
// safe for concurrent use.
package bloodtype

import (
	"fmt"
	"strings"
)

// BloodType is one of the eight ABO/Rh types.
// Invariant: values outside All are only reachable by direct conversion;
// construct from external input with Parse.
type BloodType string

const (
	APositive  BloodType = "A+"
	ANegative  BloodType = "A-"
	BPositive  BloodType = "B+"
	BNegative  BloodType = "B-"
	ABPositive BloodType = "AB+"
	ABNegative BloodType = "AB-"
	OPositive  BloodType = "O+"
	ONegative  BloodType = "O-"
)

// All lists every blood type in canonical order. Derived lists (profiles,
// error messages) follow this order.
var All = []BloodType{
	APositive, ANegative,
	BPositive, BNegative,
	ABPositive, ABNegative,
	OPositive, ONegative,
}

// ABO is the antigen group part of a blood type.
type ABO string

const (
	GroupA  ABO = "A"
	GroupB  ABO = "B"
	GroupAB ABO = "AB"
	GroupO  ABO = "O"
)

// Rh is the rhesus factor part of a blood type.
type Rh string

const (
	RhPositive Rh = "+"
	RhNegative Rh = "-"
)

// InvalidBloodTypeError reports a value outside the closed blood type set.
type InvalidBloodTypeError struct {
	Value string
}

func (e *InvalidBloodTypeError) Error() string {
	return fmt.Sprintf("invalid blood type %q: must be one of %s", e.Value, joined)
}

var joined = func() string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}()

// Parse converts external input into a BloodType. Matching ignores case and
// surrounding whitespace ("ab+ " parses as AB+). The error names the original
// value.
func Parse(s string) (BloodType, error) {
	t := BloodType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", &InvalidBloodTypeError{Value: s}
	}
	return t, nil
}

// IsValid reports whether t is a member of the closed set.
func (t BloodType) IsValid() bool {
	switch t {
	case APositive, ANegative, BPositive, BNegative, ABPositive, ABNegative, OPositive, ONegative:
		return true
	}
	return false
}

func (t BloodType) String() string {
	return string(t)
}

// ABO returns the antigen group. Only meaningful for valid types.
func (t BloodType) ABO() ABO {
	if len(t) < 2 {
		return ""
	}
	return ABO(t[:len(t)-1])
}

// Rh returns the rhesus factor. Only meaningful for valid types.
func (t BloodType) Rh() Rh {
	if len(t) < 2 {
		return ""
	}
	return Rh(t[len(t)-1:])
}
