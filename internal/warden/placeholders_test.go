package warden

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{-time.Minute, "0s"},
		{400 * time.Millisecond, "1s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m 30s"},
		{time.Hour, "1h 0m 0s"},
		{25*time.Hour + 30*time.Minute, "1d 1h 30m 0s"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, FormatDuration(c.in), "FormatDuration(%v)", c.in)
	}
}
