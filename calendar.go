package main

import "time"

// planZone is the one calendar every "today"/"tomorrow" is computed in. The
// product targets Bangladesh, which is UTC+6 with no daylight saving, so a
// fixed zone is exact and needs no tzdata on the host.
var planZone = time.FixedZone("Asia/Dhaka", 6*60*60)

// regionalDate returns the YYYY-MM-DD calendar day in planZone at now, shifted
// by offsetDays (1 = tomorrow, -1 = yesterday).
func regionalDate(now time.Time, offsetDays int) string {
	local := now.In(planZone)
	return local.AddDate(0, 0, offsetDays).Format(time.DateOnly)
}

// validDate reports whether s is a YYYY-MM-DD date.
func validDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}
