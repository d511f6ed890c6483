package test

// timerFiredMsg reports that a controller-armed timer elapsed. The token
// identifies which arm request this callback belongs to; the controller
// ignores tokens it has since cancelled, which is what makes quitting a
// test mid-timer safe.
type timerFiredMsg struct {
	token int
}
