package led

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	require.False(t, s.Active)
	require.Equal(t, Red, s.Color)
	require.Equal(t, 1, s.Rate)
}

func TestParseColorCaseInsensitive(t *testing.T) {
	tests := []struct {
		token string
		want  Color
	}{
		{token: "red", want: Red},
		{token: "RED", want: Red},
		{token: "Green", want: Green},
		{token: "bLuE", want: Blue},
	}

	for _, tc := range tests {
		t.Run(tc.token, func(t *testing.T) {
			got, err := ParseColor(tc.token)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := ParseColor("purple")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown color")
}

func TestParseActive(t *testing.T) {
	on, err := ParseActive("On")
	require.NoError(t, err)
	require.True(t, on)

	off, err := ParseActive("OFF")
	require.NoError(t, err)
	require.False(t, off)

	_, err = ParseActive("xyz")
	require.Error(t, err)
}

func TestParseRate(t *testing.T) {
	for rate := MinRate; rate <= MaxRate; rate++ {
		got, err := ParseRate(strconv.Itoa(rate))
		require.NoError(t, err)
		require.Equal(t, rate, got)
	}

	for _, token := range []string{"0", "6", "-1", "abc", "2.5", ""} {
		_, err := ParseRate(token)
		require.Error(t, err, "token %q should be rejected", token)
	}
}

func TestStateEqual(t *testing.T) {
	a := State{Active: true, Color: Blue, Rate: 3}
	require.True(t, a.Equal(State{Active: true, Color: Blue, Rate: 3}))
	require.False(t, a.Equal(State{Active: false, Color: Blue, Rate: 3}))
	require.False(t, a.Equal(State{Active: true, Color: Red, Rate: 3}))
	require.False(t, a.Equal(State{Active: true, Color: Blue, Rate: 4}))
}

func TestStateString(t *testing.T) {
	require.Equal(t, "{ off, red, 1 }", Default().String())
	require.Equal(t, "{ on, blue, 5 }", State{Active: true, Color: Blue, Rate: 5}.String())
}
