package entity

import "time"

type Skill string

const (
	SkillBeginner     Skill = "beginner"
	SkillIntermediate Skill = "intermediate"
	SkillAdvanced     Skill = "advanced"
)

type Course struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Weeks                string    `json:"weeks"`
	Tuition              float64   `json:"tuition"`
	MinimumSkill         Skill     `json:"minimumSkill"`
	ScholarshipAvailable bool      `json:"scholarshipAvailable"`
	CreatedAt            time.Time `json:"createdAt"`
	BootcampID           string    `json:"bootcamp"`
	UserID               string    `json:"user"`
}
