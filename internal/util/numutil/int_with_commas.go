package numutil

import "strconv"

// IntWithCommas returns a string representation of an integer with commas
// as thousands separators.
//
// Example:
//
//	12345 -> "12,345"
func IntWithCommas(i int64) string {
	if i < 0 {
		return "-" + IntWithCommas(-i)
	}

	digits := strconv.FormatInt(i, 10)
	if len(digits) <= 3 {
		return digits
	}

	var out []byte
	for pos, digit := range []byte(digits) {
		if pos > 0 && (len(digits)-pos)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digit)
	}
	return string(out)
}
