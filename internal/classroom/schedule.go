package classroom

import "time"

// Class is one timetable slot.
type Class struct {
	Subject string `json:"subject"`
	Time    string `json:"time"`
	Topic   string `json:"topic"`
	Teacher string `json:"teacher"`
	Room    string `json:"room"`
}

// Day is a weekday of the schedule with its concrete date.
type Day struct {
	Name    string    `json:"day"`
	Date    time.Time `json:"date"`
	IsToday bool      `json:"isToday"`
	Classes []Class   `json:"classes"`
}

const (
	slotMorning   = "9:00 AM - 10:30 AM"
	slotLate      = "11:00 AM - 12:30 PM"
	slotAfternoon = "2:00 PM - 3:30 PM"
)

func physics(topic string) Class {
	return Class{Subject: "Physics", Topic: topic, Teacher: "Dr. Smith", Room: "Lab A"}
}

func chemistry(topic string) Class {
	return Class{Subject: "Chemistry", Topic: topic, Teacher: "Prof. Johnson", Room: "Lab B"}
}

func mathematics(topic string) Class {
	return Class{Subject: "Mathematics", Topic: topic, Teacher: "Dr. Williams", Room: "Room 301"}
}

// timetable is indexed by weekday, Monday through Friday.
var timetable = map[time.Weekday][3]Class{
	time.Monday:    {physics("Quantum Mechanics"), chemistry("Organic Reactions"), mathematics("Calculus II")},
	time.Tuesday:   {mathematics("Linear Algebra"), physics("Thermodynamics"), chemistry("Molecular Structure")},
	time.Wednesday: {chemistry("Chemical Kinetics"), mathematics("Differential Equations"), physics("Electromagnetism")},
	time.Thursday:  {physics("Wave Optics"), chemistry("Electrochemistry"), mathematics("Statistics")},
	time.Friday:    {mathematics("Probability Theory"), physics("Atomic Structure"), chemistry("Lab Session")},
}

var slots = [3]string{slotMorning, slotLate, slotAfternoon}

// dateForDay offsets anchor to the given weekday of its Sunday-based week.
func dateForDay(day time.Weekday, anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, int(day)-int(anchor.Weekday()))
}

// Week lays out Monday to Friday around anchor, flagging the day equal to now.
func Week(anchor, now time.Time) []Day {
	days := make([]Day, 0, 5)
	for wd := time.Monday; wd <= time.Friday; wd++ {
		date := dateForDay(wd, anchor)
		classes := make([]Class, 0, 3)
		for i, c := range timetable[wd] {
			c.Time = slots[i]
			classes = append(classes, c)
		}
		days = append(days, Day{
			Name:    wd.String(),
			Date:    date,
			IsToday: IsToday(date, now),
			Classes: classes,
		})
	}
	return days
}

// WeekRange is the Monday..Friday span of anchor's week.
type WeekRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

func Range(anchor time.Time) WeekRange {
	start := dateForDay(time.Monday, anchor)
	end := start.AddDate(0, 0, 4)
	return WeekRange{
		Start: start,
		End:   end,
		Label: start.Format("Jan 2") + " - " + end.Format("Jan 2"),
	}
}

// Navigate moves the anchor by whole weeks; direction is +1 or -1.
func Navigate(anchor time.Time, direction int) time.Time {
	switch {
	case direction > 0:
		return anchor.AddDate(0, 0, 7)
	case direction < 0:
		return anchor.AddDate(0, 0, -7)
	}
	return anchor
}

// IsToday compares calendar dates in date's location.
func IsToday(date, now time.Time) bool {
	now = now.In(date.Location())
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
