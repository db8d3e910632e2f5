package youtube

import (
	"strconv"
	"strings"
)

// ParseISODuration converts the Data API's ISO-8601 duration strings
// (e.g. "PT4M13S", "PT1H2M", "P1DT2H") into whole seconds. Malformed input
// yields 0 rather than an error; a missing duration is treated the same as
// a zero-length video.
func ParseISODuration(s string) int {
	if !strings.HasPrefix(s, "P") {
		return 0
	}
	s = s[1:]

	var days, hours, minutes, seconds int
	inTime := false
	num := ""

	for _, r := range s {
		switch {
		case r == 'T':
			inTime = true
		case r >= '0' && r <= '9':
			num += string(r)
		default:
			n, err := strconv.Atoi(num)
			if err != nil {
				return 0
			}
			num = ""
			switch r {
			case 'D':
				days = n
			case 'H':
				hours = n
			case 'M':
				if inTime {
					minutes = n
				} else {
					// Month designator; trending videos never carry one,
					// approximate as 30 days.
					days += n * 30
				}
			case 'S':
				seconds = n
			case 'W':
				days += n * 7
			case 'Y':
				days += n * 365
			default:
				return 0
			}
		}
	}

	return ((days*24+hours)*60+minutes)*60 + seconds
}
