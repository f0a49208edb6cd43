package face

// Config is everything the composer needs besides the time itself.
// A Config is never mutated once built; settings changes produce a new one.
type Config struct {
	WeekdayMode     WeekdayMode
	FirstDayOfWeek  int
	DateFormat      Format
	LeadingZeroHour bool
	Hour12          bool
	ShowSeconds     bool
	ShowBattery     bool
}
