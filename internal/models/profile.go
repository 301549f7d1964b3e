package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Profile is the developer profile attached one-to-one to a User.
type Profile struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	Handle   string `gorm:"unique;not null" json:"handle"`
	Status   string `gorm:"not null" json:"status"`
	Company  string `json:"company"`
	Website  string `json:"website"`
	Location string `json:"location"`
	// Skills is persisted as a comma-separated list; SkillList is the
	// serialized view, populated whenever GORM loads a profile.
	Skills         string         `gorm:"not null" json:"-"`
	SkillList      []string       `gorm:"-" json:"skills"`
	Bio            string         `json:"bio"`
	GithubUsername string         `json:"github_username"`
	Youtube        string         `json:"youtube"`
	Twitter        string         `json:"twitter"`
	Linkedin       string         `json:"linkedin"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Normalize derives SkillList from the persisted Skills column.
func (p *Profile) Normalize() {
	p.SkillList = nil
	for _, s := range strings.Split(p.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			p.SkillList = append(p.SkillList, s)
		}
	}
}

// AfterFind keeps SkillList in sync on every load.
func (p *Profile) AfterFind(_ *gorm.DB) error {
	p.Normalize()
	return nil
}
