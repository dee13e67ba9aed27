package waypoint

import "net/url"

const LogMaskVal = "xxxxxx"

// Mask replaces every value under key in vals with a single LogMaskVal.
// Mask does nothing when key is absent.
func Mask(vals url.Values, key string) {
	if _, ok := vals[key]; !ok {
		return
	}

	vals[key] = []string{LogMaskVal}
}
