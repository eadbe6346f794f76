package dto

import (
	"github.com/karthikr/talentflow/internal/app/lifecycle"
	"github.com/karthikr/talentflow/internal/app/models"
)

// CandidateRequest carries the editable candidate profile for both the
// submit and update endpoints.
type CandidateRequest struct {
	FullName        string `json:"fullName" binding:"required"`
	Gender          string `json:"gender"`
	FatherName      string `json:"fatherName"`
	FirstGraduate   bool   `json:"firstGraduate"`
	ExperienceLevel string `json:"experienceLevel" binding:"required" enums:"Fresher,Lateral"`
	BatchLabel      string `json:"batchLabel"`
	Year            int    `json:"year"`
	Source          string `json:"source" binding:"required" enums:"Walk-in,Reference,Campus"`
	ReferenceName   string `json:"referenceName"`
	Native          string `json:"native"`
	MobileNumber    string `json:"mobileNumber" binding:"required"`
	PersonalEmail   string `json:"personalEmail" binding:"required"`
	LinkedinURL     string `json:"linkedinUrl"`
	College         string `json:"college"`
	ResumeFileName  string `json:"resumeFileName"`
}

// Profile converts the request into the lifecycle engine's input form.
func (r CandidateRequest) Profile() lifecycle.CandidateProfile {
	return lifecycle.CandidateProfile{
		FullName:        r.FullName,
		Gender:          r.Gender,
		FatherName:      r.FatherName,
		FirstGraduate:   r.FirstGraduate,
		ExperienceLevel: models.ExperienceLevel(r.ExperienceLevel),
		BatchLabel:      r.BatchLabel,
		Year:            r.Year,
		Source:          models.Source(r.Source),
		ReferenceName:   r.ReferenceName,
		Native:          r.Native,
		MobileNumber:    r.MobileNumber,
		PersonalEmail:   r.PersonalEmail,
		LinkedinURL:     r.LinkedinURL,
		College:         r.College,
		ResumeFileName:  r.ResumeFileName,
	}
}

// BulkCandidateRequest carries the id list for bulk routing transitions.
type BulkCandidateRequest struct {
	CandidateIDs []int64 `json:"candidateIds" binding:"required"`
}

// AssignmentRequest sets an office email or employee id on a sent candidate.
type AssignmentRequest struct {
	Value string `json:"value" binding:"required"`
}

// LDStatusRequest records the L&D verdict for one candidate.
type LDStatusRequest struct {
	Status string `json:"status" binding:"required" enums:"Selected,Rejected,Dropped"`
}

// CandidateListQuery captures the list endpoint's filters.
type CandidateListQuery struct {
	Page            int    `form:"page,default=1"`
	Limit           int    `form:"limit,default=10"`
	Search          string `form:"search"`
	Status          string `form:"status,default=all"`
	ExperienceLevel string `form:"experienceLevel,default=all"`
	BatchLabel      string `form:"batchLabel,default=all"`
	FromDate        string `form:"fromDate"`
	ToDate          string `form:"toDate"`
}

// DashboardStats is the HR Tag dashboard counter block.
type DashboardStats struct {
	Total               int64 `json:"total"`
	Submitted           int64 `json:"submitted"`
	Sent                int64 `json:"sent"`
	EmailAssigned       int64 `json:"emailAssigned"`
	EmailUnassigned     int64 `json:"emailUnassigned"`
	EmpIDAssigned       int64 `json:"empIdAssigned"`
	EmpIDUnassigned     int64 `json:"empIdUnassigned"`
	Completed           int64 `json:"completed"`
	Deployed            int64 `json:"deployed"`
	Rejected            int64 `json:"rejected"`
	Dropped             int64 `json:"dropped"`
	DeployedSentToHROps int64 `json:"deployedSentToHROps"`
	FreshersCount       int64 `json:"freshersCount"`
	LateralCount        int64 `json:"lateralCount"`
	WalkinCount         int64 `json:"walkinCount"`
	ReferenceCount      int64 `json:"referenceCount"`
	CampusCount         int64 `json:"campusCount"`
}
