package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"BEARER abc", "abc", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Bearer a b", "", false},
		{"Token abc", "", false},
		{" Bearer abc", "", false},
		{"Bearerabc", "", false},
	}

	for _, tc := range cases {
		token, ok := ParseBearerToken(tc.header)
		assert.Equal(t, tc.ok, ok, "header %q", tc.header)
		assert.Equal(t, tc.token, token, "header %q", tc.header)
	}
}
