package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is a span of time in blog.toml, written as text such as "10m"
// or "1h30m". A bare number counts seconds and an empty string is zero.
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText writes d in the form UnmarshalText reads.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a duration, leaving d unchanged on error.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*d = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*d = Duration(time.Duration(n) * time.Second)
		return nil
	}
	p, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("Duration: %w", err)
	}
	*d = Duration(p)
	return nil
}
