package valueobjects

import "fmt"

// CommitStatus is the workflow state of a code commit.
type CommitStatus string

const (
	StatusUnmatched CommitStatus = "unmatched"
	StatusMatched   CommitStatus = "matched"
	StatusStaged    CommitStatus = "staged"
	StatusVerified  CommitStatus = "verified"
	StatusDeployed  CommitStatus = "deployed"
)

// CommitEvent is a workflow event for a code commit.
type CommitEvent string

const (
	EventMatch   CommitEvent = "match"
	EventUnmatch CommitEvent = "unmatch"
	EventStage   CommitEvent = "stage"
	EventVerify  CommitEvent = "verify"
	EventDeploy  CommitEvent = "deploy"
)

var validCommitStatuses = map[CommitStatus]bool{
	StatusUnmatched: true,
	StatusMatched:   true,
	StatusStaged:    true,
	StatusVerified:  true,
	StatusDeployed:  true,
}

// commitTransitions is the commit state machine table. Deployed is terminal.
var commitTransitions = map[CommitStatus]map[CommitEvent]CommitStatus{
	StatusUnmatched: {
		EventMatch: StatusMatched,
	},
	StatusMatched: {
		EventUnmatch: StatusUnmatched,
		EventStage:   StatusStaged,
	},
	StatusStaged: {
		EventUnmatch: StatusUnmatched,
		EventVerify:  StatusVerified,
	},
	StatusVerified: {
		EventDeploy: StatusDeployed,
	},
	StatusDeployed: {},
}

func (cs CommitStatus) String() string {
	return string(cs)
}

func (cs CommitStatus) IsValid() bool {
	return validCommitStatuses[cs]
}

func (cs CommitStatus) IsUnmatched() bool {
	return cs == StatusUnmatched
}

func (cs CommitStatus) IsMatched() bool {
	return cs == StatusMatched
}

func (cs CommitStatus) IsStaged() bool {
	return cs == StatusStaged
}

func (cs CommitStatus) IsVerified() bool {
	return cs == StatusVerified
}

func (cs CommitStatus) IsDeployed() bool {
	return cs == StatusDeployed
}

func (ce CommitEvent) String() string {
	return string(ce)
}

// NextCommitStatus looks up the transition table. The second return value is
// false when the event is not defined for the state.
func NextCommitStatus(from CommitStatus, event CommitEvent) (CommitStatus, bool) {
	events, ok := commitTransitions[from]
	if !ok {
		return "", false
	}
	next, ok := events[event]
	return next, ok
}

func NewCommitStatus(s string) (CommitStatus, error) {
	cs := CommitStatus(s)
	if !cs.IsValid() {
		return "", fmt.Errorf("invalid commit status: %s", s)
	}
	return cs, nil
}
