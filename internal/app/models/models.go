package models

// RoleType discriminates user records in the users collection.
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleTeacher RoleType = "teacher"
	RoleAdmin   RoleType = "admin"
)

// DefaultCapacity is the course section capacity when none is given.
const DefaultCapacity = 30

// DefaultSection is the section disambiguator when none is given.
const DefaultSection = "A"
