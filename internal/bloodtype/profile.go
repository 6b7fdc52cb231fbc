package bloodtype

// Profile lists every type a blood type can give to and receive from.
type Profile struct {
	BloodType      BloodType
	CanDonateTo    []BloodType
	CanReceiveFrom []BloodType
}

// profiles is derived from Check over all 64 pairs, so it cannot drift from
// the pairwise rule.
var profiles = buildProfiles()

func buildProfiles() map[BloodType]Profile {
	out := make(map[BloodType]Profile, len(All))
	for _, t := range All {
		p := Profile{BloodType: t}
		for _, other := range All {
			if Check(t, other).Compatible {
				p.CanDonateTo = append(p.CanDonateTo, other)
			}
			if Check(other, t).Compatible {
				p.CanReceiveFrom = append(p.CanReceiveFrom, other)
			}
		}
		out[t] = p
	}
	return out
}

// ProfileFor returns the donation profile of t in canonical order. The slices
// are copies. An invalid t yields an empty profile.
func ProfileFor(t BloodType) Profile {
	p, ok := profiles[t]
	if !ok {
		return Profile{BloodType: t}
	}
	return Profile{
		BloodType:      p.BloodType,
		CanDonateTo:    append([]BloodType(nil), p.CanDonateTo...),
		CanReceiveFrom: append([]BloodType(nil), p.CanReceiveFrom...),
	}
}

// DonorsFor returns the donor types compatible with recipient.
func DonorsFor(recipient BloodType) []BloodType {
	return ProfileFor(recipient).CanReceiveFrom
}

// Strings converts types to their wire form.
func Strings(types []BloodType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
