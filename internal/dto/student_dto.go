package dto

import (
	"time"

	"github.com/edupath-ng/edupath-go-api/internal/models"
)

// StudentCreateRequest carries the applicant profile submitted at registration.
type StudentCreateRequest struct {
	FirstName            string   `json:"firstName" validate:"required"`
	LastName             string   `json:"lastName" validate:"required"`
	Sex                  string   `json:"sex" validate:"required"`
	DesiredCourse        string   `json:"desiredCourse" validate:"required"`
	Email                string   `json:"email" validate:"required,email"`
	PreferredInstitution string   `json:"preferredInstitution" validate:"required"`
	MobileNumber         string   `json:"mobileNumber" validate:"required"`
	SubjectCombination   []string `json:"subjectCombination" validate:"required,min=1,dive,required"`
	ParentsPhoneNumber   string   `json:"parentsPhoneNumber" validate:"required"`
	DesiredUTMEScore     int      `json:"desiredUTMEScore" validate:"required,gt=0"`
	DoneUTMEBefore       *bool    `json:"doneUTMEBefore" validate:"required"`
	PreviousScore        *int     `json:"previousScore" validate:"omitempty,gt=0"`
}

// StudentUpdateRequest holds optional admin corrections; nil fields are
// left untouched.
type StudentUpdateRequest struct {
	FirstName            *string  `json:"firstName" validate:"omitempty,min=1"`
	LastName             *string  `json:"lastName" validate:"omitempty,min=1"`
	Sex                  *string  `json:"sex" validate:"omitempty,min=1"`
	DesiredCourse        *string  `json:"desiredCourse" validate:"omitempty,min=1"`
	Email                *string  `json:"email" validate:"omitempty,email"`
	PreferredInstitution *string  `json:"preferredInstitution" validate:"omitempty,min=1"`
	MobileNumber         *string  `json:"mobileNumber" validate:"omitempty,min=1"`
	SubjectCombination   []string `json:"subjectCombination" validate:"omitempty,min=1,dive,required"`
	ParentsPhoneNumber   *string  `json:"parentsPhoneNumber" validate:"omitempty,min=1"`
	DesiredUTMEScore     *int     `json:"desiredUTMEScore" validate:"omitempty,gt=0"`
	DoneUTMEBefore       *bool    `json:"doneUTMEBefore"`
	PreviousScore        *int     `json:"previousScore" validate:"omitempty,gt=0"`
}

// StudentApproveRequest merges optional corrections into the record during
// approval. ReissueCredential must be set explicitly to overwrite the
// credential of an already approved student.
type StudentApproveRequest struct {
	StudentUpdateRequest
	ReissueCredential bool `json:"reissueCredential"`
}

// StudentLoginRequest authenticates by public identifier and password.
type StudentLoginRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// StudentResponse serializes a student without the credential hash.
type StudentResponse struct {
	ID                   uint      `json:"id"`
	StudentID            string    `json:"studentId"`
	FirstName            string    `json:"firstName"`
	LastName             string    `json:"lastName"`
	Sex                  string    `json:"sex"`
	Email                string    `json:"email"`
	DesiredCourse        string    `json:"desiredCourse"`
	PreferredInstitution string    `json:"preferredInstitution"`
	MobileNumber         string    `json:"mobileNumber"`
	ParentsPhoneNumber   string    `json:"parentsPhoneNumber"`
	SubjectCombination   []string  `json:"subjectCombination"`
	DesiredUTMEScore     int       `json:"desiredUTMEScore"`
	DoneUTMEBefore       bool      `json:"doneUTMEBefore"`
	PreviousScore        *int      `json:"previousScore,omitempty"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// StudentLoginResponse returns the authenticated student and session token.
type StudentLoginResponse struct {
	Student     StudentResponse `json:"student"`
	AccessToken string          `json:"accessToken"`
}

// StudentListResponse wraps a student list with pagination metadata.
type StudentListResponse struct {
	Students   []StudentResponse `json:"students"`
	Pagination PaginationMeta    `json:"pagination"`
}

// NewStudentResponse maps a model to its API representation.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:                   student.ID,
		StudentID:            student.StudentID,
		FirstName:            student.FirstName,
		LastName:             student.LastName,
		Sex:                  student.Sex,
		Email:                student.Email,
		DesiredCourse:        student.DesiredCourse,
		PreferredInstitution: student.PreferredInstitution,
		MobileNumber:         student.MobileNumber,
		ParentsPhoneNumber:   student.ParentsPhoneNumber,
		SubjectCombination:   append([]string(nil), student.SubjectCombination...),
		DesiredUTMEScore:     student.DesiredUTMEScore,
		DoneUTMEBefore:       student.DoneUTMEBefore,
		PreviousScore:        student.PreviousScore,
		Status:               student.Status,
		CreatedAt:            student.CreatedAt,
		UpdatedAt:            student.UpdatedAt,
	}
}

// NewStudentResponseSlice maps a list of models.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}
	return responses
}
