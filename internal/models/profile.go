package models

import (
	"errors"
	"strings"
)

var (
	ErrInvalidAge    = errors.New("age must be a positive number")
	ErrGenderMissing = errors.New("gender is required")
	ErrGoalMissing   = errors.New("goal is required")
)

// Profile is the demographic input used to personalise generated tips.
type Profile struct {
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Goal   string `json:"goal"`
}

// Validate enforces the form-level constraints before a profile is handed
// to the generator. The generator itself only interpolates these values.
func (p Profile) Validate() error {
	if p.Age <= 0 {
		return ErrInvalidAge
	}
	if strings.TrimSpace(p.Gender) == "" {
		return ErrGenderMissing
	}
	if strings.TrimSpace(p.Goal) == "" {
		return ErrGoalMissing
	}
	return nil
}

// Normalized returns a copy with surrounding whitespace stripped from the
// free-text fields.
func (p Profile) Normalized() Profile {
	p.Gender = strings.TrimSpace(p.Gender)
	p.Goal = strings.TrimSpace(p.Goal)
	return p
}

// WellnessGoals are the goals offered by the profile form.
var WellnessGoals = []string{
	"Better Sleep",
	"Reduce Stress",
	"Lose Weight",
	"Build Muscle",
	"Eat Healthier",
	"Increase Energy",
	"Improve Focus",
	"Boost Mood",
}

// TipCategories are the categories the generator is asked to choose from.
var TipCategories = []string{
	"Physical",
	"Mental",
	"Nutrition",
	"Sleep",
	"Lifestyle",
}
