package domain

// StatusPresentation is the UI badge derived from a payment status.
type StatusPresentation struct {
	Label string `json:"statusLabel"`
	Color string `json:"statusColor"`
}

var statusPresentations = map[PaymentStatus]StatusPresentation{
	PaymentPending:   {Label: "Pending", Color: "yellow"},
	PaymentCompleted: {Label: "Completed", Color: "green"},
	PaymentFailed:    {Label: "Failed", Color: "red"},
	PaymentCancelled: {Label: "Cancelled", Color: "gray"},
}

var unknownStatus = StatusPresentation{Label: "Unknown", Color: "gray"}

// PresentStatus never fails: statuses outside the table render as Unknown.
func PresentStatus(s PaymentStatus) StatusPresentation {
	if p, ok := statusPresentations[s]; ok {
		return p
	}
	return unknownStatus
}
