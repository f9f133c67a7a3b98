// Package classroom holds the teacher-facing classroom views: attendance,
// the weekly schedule, the leaderboard and the dashboard summary.
package classroom

// Student is a member of the class roster.
type Student struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

var roster = []Student{
	{"1", "Bakshi", "🧑"},
	{"2", "Archi", "👧"},
	{"3", "GK", "👦"},
	{"4", "Rahul", "🧑"},
	{"5", "Ravi", "👨"},
	{"6", "Krishna", "🧑"},
	{"7", "Kishn", "👦"},
	{"8", "Aarju", "👧"},
	{"9", "Aarvi", "👧"},
	{"10", "Mahi", "👧"},
	{"11", "Aaditya", "🧑"},
	{"12", "Aditya", "👦"},
}

// Roster returns the class list in roll order.
func Roster() []Student {
	out := make([]Student, len(roster))
	copy(out, roster)
	return out
}

func avatarFor(name string) string {
	for _, s := range roster {
		if s.Name == name {
			return s.Avatar
		}
	}
	return "🧑"
}
