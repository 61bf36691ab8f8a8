package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"":                            "",
		"   ":                         "",
		"not a date":                  "",
		"2023-04-05":                  "2023-04-05",
		"2023/4/5":                    "2023-04-05",
		"2023-04-05 10:11:12":         "2023-04-05",
		"2023-04-05T10:11:12Z":        "2023-04-05",
		"2023-04-05T10:11:12.5+08:00": "2023-04-05",
		"1680652800000":               "2023-04-05",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatDate(in), "input %q", in)
	}
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender("male")
	require.NoError(t, err)
	assert.Equal(t, GenderMale, g)

	g, err = ParseGender(" F ")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, g)

	_, err = ParseGender("x")
	assert.ErrorIs(t, err, ErrInvalidGender)
}

func TestEmployee_UnpersistedOmitsID(t *testing.T) {
	raw, err := json.Marshal(Employee{WorkID: "E1", Name: "Li", Gender: GenderMale})
	require.NoError(t, err)
	assert.JSONEq(t, `{"workId":"E1","name":"Li","gender":"M"}`, string(raw))

	e := Employee{ID: IDPtr(7)}
	assert.True(t, e.Persisted())
	assert.True(t, e.HasID(7))
	assert.False(t, e.HasID(8))
	assert.False(t, Employee{}.HasID(0))
}

func TestEnvelope_OK(t *testing.T) {
	var nilEnv *Envelope[[]Employee]
	assert.False(t, nilEnv.OK())
	assert.True(t, (&Envelope[int]{Code: 200}).OK())
	assert.False(t, (&Envelope[int]{Code: 0}).OK())
}
