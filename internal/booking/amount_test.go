package booking

import (
	"encoding/json"
	"testing"

	"local_services/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{float64(99.5), 99.5, true},
		{json.Number("120"), 120, true},
		{" 45.25 ", 45.25, true},
		{"abc", 0, false},
		{nil, 0, false},
		{true, 0, false},
		{json.Number("1e"), 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if !tc.ok {
			assert.Equal(t, domain.KindValidation, domain.KindOf(err), "%v", tc.in)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestMinorUnits(t *testing.T) {
	got, err := MinorUnits(0.01)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), got)

	got, err = MinorUnits(199.999)
	assert.NoError(t, err)
	assert.Equal(t, int64(20000), got)

	_, err = MinorUnits(0.004)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = MinorUnits(2e12)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestOptionalStringRoundTrip(t *testing.T) {
	var in PatchInput
	assert.NoError(t, json.Unmarshal([]byte(`{"providerNote":"hi"}`), &in))
	assert.True(t, in.ProviderNote.Set)
	assert.Equal(t, "hi", *in.ProviderNote.Value)
	assert.False(t, in.UserNote.Set)

	assert.Error(t, json.Unmarshal([]byte(`{"providerNote":5}`), &in))
}
