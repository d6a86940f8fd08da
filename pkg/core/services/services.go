package services

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrJobNotFound is returned when a job id is not in the loaded snapshot
	ErrJobNotFound = errors.New("job not found")

	// ErrEmployeeNotFound is returned when an employee id is not in the loaded snapshot
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrEmployeeDisqualified is returned when a manual assignment names an employee
	// who is on leave, double booked or rejected by the client
	ErrEmployeeDisqualified = errors.New("employee is disqualified for this job")
)

var validate = validator.New()
