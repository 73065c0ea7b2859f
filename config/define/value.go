package define

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var sizePattern = regexp.MustCompile(`^[0-9]+(kb|k|mb|m|gb|g|tb|t|pb|p|b)?$`)

// ParseSize converts a size literal to bytes. The literal is an unsigned
// decimal number with an optional case-insensitive binary unit suffix
// (b, k/kb, m/mb, g/gb, t/tb, p/pb), so "10m" is 10*1024*1024 and a bare
// "10" is 10 bytes.
func ParseSize(value string) (int64, error) {
	lower := strings.ToLower(value)
	if !sizePattern.MatchString(lower) {
		return 0, fmt.Errorf("size %q is not valid", value)
	}

	digits := len(lower)

	for idx := 0; idx < len(lower); idx++ {
		if lower[idx] < '0' || lower[idx] > '9' {
			digits = idx

			break
		}
	}

	number, err := strconv.ParseInt(lower[:digits], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("size %q is not valid", value)
	}

	var shift uint

	if digits < len(lower) {
		switch lower[digits] {
		case 'k':
			shift = 10
		case 'm':
			shift = 20
		case 'g':
			shift = 30
		case 't':
			shift = 40
		case 'p':
			shift = 50
		}
	}

	if number != 0 && number > math.MaxInt64>>shift {
		return 0, fmt.Errorf("size %q is out of range", value)
	}

	return number << shift, nil
}
