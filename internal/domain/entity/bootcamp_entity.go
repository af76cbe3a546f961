package entity

import "time"

const DefaultPhoto = "no-photo.jpg"

// Careers is the closed set of career tracks a bootcamp may list.
var Careers = []string{
	"Web Development",
	"Mobile Development",
	"Frontend Development",
	"Backend Development",
	"Full Stack Web Development",
	"Programming Languages",
	"Software Development",
	"Computer Science",
	"UI/UX",
	"Data Science",
	"Business",
	"Project Management",
	"Data Analysis",
	"Cloud Engineering",
	"Cloud Computing",
	"Software Engineering",
	"Artificial Intelligence",
	"Machine Learning",
	"Big Data",
	"Game Development",
	"Robotics",
	"Coding for Kids",
	"Cybersecurity",
	"Network Engineering",
	"IT Support",
	"Data Visualization",
	"Data Engineering",
	"Predictive Analytics",
	"Game Design",
	"Digital Marketing",
	"IT Management",
	"Software Testing",
	"Cloud Architecture",
	"Data Modeling",
	"Network Administration",
	"Database Management",
	"Data Warehousing",
	"Other",
}

var careerSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Careers))
	for _, c := range Careers {
		m[c] = struct{}{}
	}
	return m
}()

func IsCareer(s string) bool {
	_, ok := careerSet[s]
	return ok
}

// Location is a GeoJSON point plus the geocoder's address breakdown.
// Coordinates are [longitude, latitude].
type Location struct {
	Type             string     `json:"type"`
	Coordinates      [2]float64 `json:"coordinates"`
	FormattedAddress string     `json:"formattedAddress"`
	Street           string     `json:"street"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	Zipcode          string     `json:"zipcode"`
	Country          string     `json:"country"`
}

func (l Location) Longitude() float64 { return l.Coordinates[0] }
func (l Location) Latitude() float64  { return l.Coordinates[1] }

type Bootcamp struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Website       string    `json:"website,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Location      *Location `json:"location,omitempty"`
	Careers       []string  `json:"careers"`
	AverageRating *float64  `json:"averageRating,omitempty"`
	AverageCost   *float64  `json:"averageCost,omitempty"`
	Photo         string    `json:"photo"`
	Housing       bool      `json:"housing"`
	JobAssistance bool      `json:"jobAssistance"`
	JobGuarantee  bool      `json:"jobGuarantee"`
	AcceptGi      bool      `json:"acceptGi"`
	CreatedAt     time.Time `json:"createdAt"`
	UserID        string    `json:"user"`
}

// OwnedBy reports whether the bootcamp belongs to userID.
func (b *Bootcamp) OwnedBy(userID string) bool { return b.UserID == userID }
