package bloodtype

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_ConsistentWithCheck(t *testing.T) {
	for _, d := range All {
		for _, r := range All {
			compatible := Check(d, r).Compatible
			assert.Equal(t, compatible, slices.Contains(ProfileFor(d).CanDonateTo, r), "%s donate to %s", d, r)
			assert.Equal(t, compatible, slices.Contains(ProfileFor(r).CanReceiveFrom, d), "%s receive from %s", r, d)
		}
	}
}

func TestProfile_KnownTable(t *testing.T) {
	donateTo := map[BloodType][]BloodType{
		APositive:  {APositive, ABPositive},
		ANegative:  {APositive, ANegative, ABPositive, ABNegative},
		BPositive:  {BPositive, ABPositive},
		BNegative:  {BPositive, BNegative, ABPositive, ABNegative},
		ABPositive: {ABPositive},
		ABNegative: {ABPositive, ABNegative},
		OPositive:  {APositive, BPositive, ABPositive, OPositive},
		ONegative:  All,
	}
	receiveFrom := map[BloodType][]BloodType{
		APositive:  {APositive, ANegative, OPositive, ONegative},
		ANegative:  {ANegative, ONegative},
		BPositive:  {BPositive, BNegative, OPositive, ONegative},
		BNegative:  {BNegative, ONegative},
		ABPositive: All,
		ABNegative: {ANegative, BNegative, ABNegative, ONegative},
		OPositive:  {OPositive, ONegative},
		ONegative:  {ONegative},
	}
	for _, bt := range All {
		p := ProfileFor(bt)
		assert.Equal(t, bt, p.BloodType)
		assert.Equal(t, donateTo[bt], p.CanDonateTo, "can donate to for %s", bt)
		assert.Equal(t, receiveFrom[bt], p.CanReceiveFrom, "can receive from for %s", bt)
	}
}

func TestProfile_ReturnsCopies(t *testing.T) {
	p := ProfileFor(ONegative)
	p.CanDonateTo[0] = ABNegative

	assert.Equal(t, APositive, ProfileFor(ONegative).CanDonateTo[0])
	assert.Equal(t, []string{"O+", "O-"}, Strings(DonorsFor(OPositive)))
}

func TestProfile_InvalidType(t *testing.T) {
	p := ProfileFor(BloodType("C+"))
	assert.Empty(t, p.CanDonateTo)
	assert.Empty(t, p.CanReceiveFrom)
}
