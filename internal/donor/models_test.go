package donor

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lahu/internal/bloodtype"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
)

func TestNewDonor(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	donorID := id.DonorID(uuid.New())

	t.Run("valid donor is trimmed", func(t *testing.T) {
		d, err := NewDonor(donorID, "  Amina  ", bloodtype.APositive, 30, " 0700 ", "", "Gulu", nil, now)
		require.NoError(t, err)
		assert.Equal(t, "Amina", d.Name)
		assert.Equal(t, "0700", d.Contact)
		assert.Equal(t, now, d.CreatedAt)
	})

	t.Run("age bounds are inclusive", func(t *testing.T) {
		_, err := NewDonor(donorID, "A", bloodtype.APositive, MinAge, "c", "", "", nil, now)
		assert.NoError(t, err)
		_, err = NewDonor(donorID, "A", bloodtype.APositive, MaxAge, "c", "", "", nil, now)
		assert.NoError(t, err)
	})

	cases := []struct {
		name    string
		donorNm string
		bt      bloodtype.BloodType
		age     int
		contact string
		last    *time.Time
	}{
		{name: "too young", donorNm: "A", bt: bloodtype.APositive, age: 17, contact: "c"},
		{name: "too old", donorNm: "A", bt: bloodtype.APositive, age: 66, contact: "c"},
		{name: "empty name", donorNm: " ", bt: bloodtype.APositive, age: 30, contact: "c"},
		{name: "empty contact", donorNm: "A", bt: bloodtype.APositive, age: 30, contact: ""},
		{name: "invalid type", donorNm: "A", bt: bloodtype.BloodType("C+"), age: 30, contact: "c"},
		{name: "future last donation", donorNm: "A", bt: bloodtype.APositive, age: 30, contact: "c", last: func() *time.Time { t := now.Add(time.Hour); return &t }()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDonor(donorID, tc.donorNm, tc.bt, tc.age, tc.contact, "", "", tc.last, now)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		})
	}
}

func TestFilterMatches(t *testing.T) {
	d := &Donor{BloodType: bloodtype.BNegative, Location: "Kampala Central"}

	assert.True(t, Filter{}.Matches(d))
	assert.True(t, Filter{Location: "kampala"}.Matches(d))
	assert.True(t, Filter{Location: "CENTRAL"}.Matches(d))
	assert.False(t, Filter{Location: "Gulu"}.Matches(d))
	assert.True(t, Filter{BloodTypes: []bloodtype.BloodType{bloodtype.ONegative, bloodtype.BNegative}}.Matches(d))
	assert.False(t, Filter{BloodTypes: []bloodtype.BloodType{bloodtype.ONegative}}.Matches(d))
	assert.False(t, Filter{BloodTypes: []bloodtype.BloodType{}}.Matches(d), "empty non-nil list matches nothing")
}
