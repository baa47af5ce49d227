package clock

import "time"

func toGoDuration(d Duration) time.Duration {
	return time.Duration(d) * time.Microsecond
}
