package calculation

import "errors"

var (
	// ErrInvalidAssumptions is returned when project assumptions are rejected before projection.
	ErrInvalidAssumptions = errors.New("invalid financial assumptions")
	// ErrInvalidContract is returned when a revenue contract is rejected before projection.
	ErrInvalidContract = errors.New("invalid revenue contract")
	// ErrInvalidIncentive is returned when a tax incentive package is rejected.
	ErrInvalidIncentive = errors.New("invalid tax incentive")
)
