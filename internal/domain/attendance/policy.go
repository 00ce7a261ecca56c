package attendance

import "fmt"

// MarkPolicy decides what a second mark for an already marked day does.
type MarkPolicy int

const (
	// PolicyOverwrite replaces the status and recorded time of the existing mark.
	PolicyOverwrite MarkPolicy = iota
	// PolicyReject refuses the second mark with ErrAlreadyMarked.
	PolicyReject
)

func ParsePolicy(s string) (MarkPolicy, error) {
	switch s {
	case "", "overwrite":
		return PolicyOverwrite, nil
	case "reject":
		return PolicyReject, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

func (p MarkPolicy) String() string {
	switch p {
	case PolicyOverwrite:
		return "overwrite"
	case PolicyReject:
		return "reject"
	}
	return fmt.Sprintf("MarkPolicy(%d)", int(p))
}
