package waypoint_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint"
)

func TestMask(t *testing.T) {
	for _, tc := range []struct {
		name string
		vals url.Values
		key  string
		want url.Values
	}{
		{"zero", url.Values{}, "", url.Values{}},
		{
			"mismatch",
			url.Values{"access_token": []string{"abc"}},
			"acess_token",
			url.Values{"access_token": []string{"abc"}},
		},
		{
			"match",
			url.Values{"access_token": []string{"abc"}},
			"access_token",
			url.Values{"access_token": []string{waypoint.LogMaskVal}},
		},
		{
			"squash-multiple",
			url.Values{"password": []string{"hunter2", "hunter3"}},
			"password",
			url.Values{"password": []string{waypoint.LogMaskVal}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			waypoint.Mask(tc.vals, tc.key)
			require.Equal(t, tc.want, tc.vals)
		})
	}
}

func TestNewEnvironment(t *testing.T) {
	for _, tc := range []struct {
		name     string
		val      string
		def      waypoint.Environment
		expected waypoint.Environment
	}{
		{"Zero-Value", "", waypoint.Development, waypoint.Development},
		{"Lower", "production", waypoint.Development, waypoint.Production},
		{"Padded", " TESTING ", waypoint.Development, waypoint.Testing},
		{"Unknown", "moon", waypoint.Staging, waypoint.Staging},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, waypoint.NewEnvironment(tc.val, tc.def))
		})
	}
}
