package bloodtype

import "fmt"

// Reason names the rule that decided a compatibility check.
type Reason string

const (
	ReasonUniversalDonor     Reason = "universal_donor"
	ReasonUniversalRecipient Reason = "universal_recipient"
	ReasonRhMismatch         Reason = "rh_mismatch"
	ReasonABOMismatch        Reason = "abo_mismatch"
	ReasonMatch              Reason = "abo_rh_match"
)

// Result is the verdict for one donor/recipient pair.
//
// UsedFallback is kept for wire compatibility with older clients that expect
// the field; there is a single rule implementation, so it is always false.
type Result struct {
	Compatible   bool
	Message      string
	UsedFallback bool
	Reason       Reason
}

// CheckCompatibility parses both inputs and applies Check. The donor is
// validated first, so when both are invalid the error names the donor value.
func CheckCompatibility(donor, recipient string) (Result, error) {
	d, err := Parse(donor)
	if err != nil {
		return Result{}, err
	}
	r, err := Parse(recipient)
	if err != nil {
		return Result{}, err
	}
	return Check(d, r), nil
}

// Check decides whether donor blood can be given to recipient.
//
// Rule precedence (first match wins):
//  1. O- donor: always compatible
//  2. AB+ recipient: always compatible, even when Rh differs
//  3. Rh+ donor to Rh- recipient: incompatible
//  4. donor group O, same group, or AB recipient: compatible
//  5. otherwise incompatible
//
// Both arguments must be valid; callers at trust boundaries go through Parse.
func Check(donor, recipient BloodType) Result {
	switch {
	case donor == ONegative:
		return Result{
			Compatible: true,
			Reason:     ReasonUniversalDonor,
			Message:    fmt.Sprintf("%s is a universal donor and can donate to %s", donor, recipient),
		}
	case recipient == ABPositive:
		return Result{
			Compatible: true,
			Reason:     ReasonUniversalRecipient,
			Message:    fmt.Sprintf("%s is a universal recipient and can receive from %s", recipient, donor),
		}
	case recipient.Rh() == RhNegative && donor.Rh() == RhPositive:
		return Result{
			Reason:  ReasonRhMismatch,
			Message: fmt.Sprintf("%s cannot donate to %s due to Rh factor incompatibility", donor, recipient),
		}
	case donor.ABO() == GroupO, donor.ABO() == recipient.ABO(), recipient.ABO() == GroupAB:
		return Result{
			Compatible: true,
			Reason:     ReasonMatch,
			Message:    fmt.Sprintf("%s can donate to %s: ABO group and Rh factor are compatible", donor, recipient),
		}
	default:
		return Result{
			Reason:  ReasonABOMismatch,
			Message: fmt.Sprintf("%s cannot donate to %s due to blood type incompatibility", donor, recipient),
		}
	}
}
