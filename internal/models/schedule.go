package models

// Weekday names as stored on schedule rows. Lowercase English, matching the
// values the booking clients send.
const (
	Sunday    = "sunday"
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
)

// Weekdays lists every valid day_of_week value.
var Weekdays = []string{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// IsValidWeekday reports whether s is one of the seven weekday names.
func IsValidWeekday(s string) bool {
	for _, d := range Weekdays {
		if s == d {
			return true
		}
	}
	return false
}

// DoctorSchedule represents a recurring weekly availability window declared
// by a doctor. A doctor may declare several windows for the same day (e.g.
// a morning and an evening block); windows are allowed to overlap.
type DoctorSchedule struct {
	BaseModel
	DoctorID    string `gorm:"size:36;index;not null" json:"doctorId"`
	DayOfWeek   string `gorm:"size:10;index;not null" json:"dayOfWeek"`
	StartTime   string `gorm:"size:5;not null" json:"startTime"` // "HH:MM", 24h
	EndTime     string `gorm:"size:5;not null" json:"endTime"`   // "HH:MM", 24h
	IsAvailable bool   `gorm:"default:true" json:"isAvailable"`  // declared but temporarily disabled windows keep their row

	Doctor User `gorm:"foreignKey:DoctorID" json:"-"`
}
