package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyMarked = errors.New("attendance already marked for this date")
	ErrInvalidStatus = errors.New("status must be Present or Absent")
	ErrInvalidDate   = errors.New("date must be in YYYY-MM-DD format")
	ErrUnknownPolicy = errors.New("unknown attendance mark policy")
)
