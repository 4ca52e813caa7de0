// Package datebox formats the "today" line shown in the dashboard header
// using the Solar Hijri calendar with Latin digits.
package datebox

import (
	"fmt"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

var months = [...]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

// weekdays keeps the spelling used across the dashboard copy.
var weekdays = [...]string{
	time.Sunday:    "یکشنبه",
	time.Monday:    "دوشنبه",
	time.Tuesday:   "سه‌شنبه",
	time.Wednesday: "چهارشنبه",
	time.Thursday:  "پنجشنبه",
	time.Friday:    "جمعه",
	time.Saturday:  "شنبه",
}

// Date is a Solar Hijri calendar date. Month is 1-based.
type Date struct {
	Year, Month, Day int
}

// FromTime converts the calendar day of t, in t's location.
func FromTime(t time.Time) Date {
	pt := ptime.New(t)
	return Date{Year: pt.Year(), Month: int(pt.Month()), Day: pt.Day()}
}

func (d Date) MonthName() string {
	if d.Month < 1 || d.Month > 12 {
		return ""
	}
	return months[d.Month-1]
}

// Long formats t as "<weekday> <day> <month> <year>".
func Long(t time.Time) string {
	d := FromTime(t)
	return fmt.Sprintf("%s %d %s %d", weekdays[t.Weekday()], d.Day, d.MonthName(), d.Year)
}

// Today is the header line for now in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc != nil {
		now = now.In(loc)
	}
	return "امروز: " + Long(now)
}
