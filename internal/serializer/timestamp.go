package serializer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const microsPerSecond = 1_000_000

// FormatEpoch renders t as seconds since the Unix epoch with exactly six
// fractional digits. Anything below a microsecond is truncated.
func FormatEpoch(t time.Time) string {
	micros := t.UnixMicro()
	sign := ""
	if micros < 0 {
		sign = "-"
		micros = -micros
	}
	return fmt.Sprintf("%s%d.%06d", sign, micros/microsPerSecond, micros%microsPerSecond)
}

// ParseEpoch parses a decimal seconds-since-epoch value of any fractional width
// and returns the UTC time rounded half-even to the microsecond.
func ParseEpoch(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > maxEpochLen {
		return time.Time{}, fmt.Errorf("epoch longer than %d characters", maxEpochLen)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return time.Time{}, err
	}

	// Check the magnitude from the exponent alone; shifting or comparing a
	// value like 1e2147483000 materializes every digit.
	coef := d.Coefficient()
	if coef.Sign() == 0 {
		return time.UnixMicro(0).UTC(), nil
	}
	magnitude := int64(len(coef.Abs(coef).String())) + int64(d.Exponent())
	if magnitude > maxEpochDigits {
		return time.Time{}, fmt.Errorf("epoch %s out of range", s)
	}
	if magnitude < minEpochDigits {
		// Below half a microsecond.
		return time.UnixMicro(0).UTC(), nil
	}

	micros := d.Shift(6).RoundBank(0)
	if !micros.IsInteger() || micros.Cmp(minMicros) < 0 || micros.Cmp(maxMicros) > 0 {
		return time.Time{}, fmt.Errorf("epoch %s out of range", s)
	}
	return time.UnixMicro(micros.IntPart()).UTC(), nil
}

const (
	maxEpochLen = 64
	// |value| < 10^magnitude; 10^12 seconds is far past any valid time.
	maxEpochDigits = 12
	minEpochDigits = -6
)

// Bounds keep IntPart from overflowing int64.
var (
	minMicros = decimal.NewFromInt(-1 << 62)
	maxMicros = decimal.NewFromInt(1 << 62)
)
