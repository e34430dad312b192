package model

import "time"

// Profile is the student-facing part of an account. The account itself
// lives in the hosted auth backend; UserID is its opaque identifier.
type Profile struct {
	UserID       string    `json:"userId"`
	DisplayName  string    `json:"displayName"`
	StudentClass string    `json:"studentClass"` // "6".."12", may be empty
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Enrollment links a student to a catalog course.
// Progress is a percentage, 0..100.
type Enrollment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CourseID  string    `json:"courseId"`
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Completed reports whether the course has been finished.
func (e *Enrollment) Completed() bool {
	return e.Progress >= 100
}

// Certificate is issued once per student and course after completion.
// Number is the public code printed on the certificate and used to verify it.
type Certificate struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	CourseID string    `json:"courseId"`
	Number   string    `json:"number"`
	IssuedAt time.Time `json:"issuedAt"`
}

// Review is a student's rating of a course. One per student and course.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CourseID  string    `json:"courseId"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// RatingSummary aggregates the reviews of one course.
type RatingSummary struct {
	CourseID string  `json:"courseId"`
	Average  float64 `json:"average"`
	Count    int     `json:"count"`
}
