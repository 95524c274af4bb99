// Package util holds small formatting helpers shared by the command-line tools.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
)

// Checksum returns the hex SHA256 of everything read from r.
func Checksum(r io.Reader) (string, error) {
	sha256Hash := sha256.New()
	if _, err := io.Copy(sha256Hash, r); err != nil {
		return "", errors.Wrap(err, "failed to calculate checksum")
	}

	return hex.EncodeToString(sha256Hash.Sum(nil)), nil
}

// ShortChecksum truncates a checksum for display.
func ShortChecksum(sum string) string {
	if len(sum) <= 12 {
		return sum
	}

	return sum[:12]
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}

// FormatAge renders how long ago t was, e.g. "1h30m", "5m10s", "45s".
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}

	age := now.Sub(t).Round(time.Second)
	if age < 0 {
		age = 0
	}

	switch {
	case age < time.Minute:
		return fmt.Sprintf("%ds", int(age.Seconds()))
	case age < time.Hour:
		return fmt.Sprintf("%dm%ds", int(age.Minutes()), int(age.Seconds())%60)
	case age < 48*time.Hour:
		return fmt.Sprintf("%dh%dm", int(age.Hours()), int(age.Minutes())%60)
	default:
		return fmt.Sprintf("%dd", int(age.Hours())/24)
	}
}
