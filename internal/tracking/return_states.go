package tracking

// ReturnStage is a stage of the return/refund lifecycle. The forward
// chain is strictly ordered; Rejected sits outside the chain and is
// reachable from any non-terminal stage.
type ReturnStage int

const (
	ReturnRequested ReturnStage = iota
	ReturnApproved
	ReturnPickupScheduled
	ReturnPickedUp
	ReturnReceived
	ReturnQualityCheck
	ReturnRefundInitiated
	ReturnRefundCompleted

	// ReturnRejected is the orthogonal terminal. It reopens return
	// eligibility for the order (see CanReturnAgain).
	ReturnRejected
)

var returnStageNames = [...]string{
	ReturnRequested:       "REQUESTED",
	ReturnApproved:        "APPROVED",
	ReturnPickupScheduled: "PICKUP_SCHEDULED",
	ReturnPickedUp:        "PICKED_UP",
	ReturnReceived:        "RECEIVED",
	ReturnQualityCheck:    "QUALITY_CHECK",
	ReturnRefundInitiated: "REFUND_INITIATED",
	ReturnRefundCompleted: "REFUND_COMPLETED",
	ReturnRejected:        "REJECTED",
}

func (s ReturnStage) String() string {
	if s < ReturnRequested || s > ReturnRejected {
		return "UNKNOWN"
	}
	return returnStageNames[s]
}

// ParseReturnStage maps a backend status string to its stage.
func ParseReturnStage(raw string) (ReturnStage, bool) {
	for stage, name := range returnStageNames {
		if raw == name {
			return ReturnStage(stage), true
		}
	}
	return ReturnRequested, false
}

// IsTerminal reports whether the stage ends the lifecycle. Only
// RefundCompleted and Rejected are terminal.
func (s ReturnStage) IsTerminal() bool {
	return s == ReturnRefundCompleted || s == ReturnRejected
}

// CanReturnTransition reports whether an ingested status update is
// legal: staying put, the next stage of the forward chain, or Rejected
// from any non-terminal stage.
func CanReturnTransition(from, to ReturnStage) bool {
	if to == from {
		return true
	}
	if to == ReturnRejected {
		return !from.IsTerminal()
	}
	return from < ReturnRefundCompleted && to == from+1
}

// Progress is the derived completion fraction over the forward chain.
// Rejected reports 1 since the lifecycle is over.
func (s ReturnStage) Progress() float64 {
	if s == ReturnRejected {
		return 1
	}
	return float64(s) / float64(ReturnRefundCompleted)
}
