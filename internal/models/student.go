package models

import (
	"time"

	"gorm.io/datatypes"
)

// Student workflow statuses.
const (
	StudentStatusPending  = "pending"
	StudentStatusApproved = "approved"
)

// Student represents one applicant going through the registration pipeline.
// StudentID is the public identifier allocated at registration; the password
// hash is only set once an admin approves the record.
type Student struct {
	ID                   uint                        `gorm:"primaryKey" json:"id"`
	StudentID            string                      `gorm:"size:16;uniqueIndex;not null" json:"studentId"`
	FirstName            string                      `gorm:"size:255;not null" json:"firstName"`
	LastName             string                      `gorm:"size:255;not null" json:"lastName"`
	Sex                  string                      `gorm:"size:16;not null" json:"sex"`
	Email                string                      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	DesiredCourse        string                      `gorm:"size:255;not null" json:"desiredCourse"`
	PreferredInstitution string                      `gorm:"size:255;not null" json:"preferredInstitution"`
	MobileNumber         string                      `gorm:"size:32;not null" json:"mobileNumber"`
	ParentsPhoneNumber   string                      `gorm:"size:32;not null" json:"parentsPhoneNumber"`
	SubjectCombination   datatypes.JSONSlice[string] `gorm:"not null" json:"subjectCombination"`
	DesiredUTMEScore     int                         `gorm:"not null" json:"desiredUTMEScore"`
	DoneUTMEBefore       bool                        `gorm:"not null" json:"doneUTMEBefore"`
	PreviousScore        *int                        `json:"previousScore,omitempty"`
	Status               string                      `gorm:"size:16;not null;default:pending;index" json:"status"`
	PasswordHash         string                      `gorm:"size:255" json:"-"`
	CreatedAt            time.Time                   `json:"createdAt"`
	UpdatedAt            time.Time                   `json:"updatedAt"`
}

// Approved reports whether the student has passed the approval workflow.
func (s Student) Approved() bool {
	return s.Status == StudentStatusApproved
}
