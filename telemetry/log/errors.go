package log

// Error reports that a Fatal-severity record was logged; Fatal always
// halts immediately after writing it (spec §7).
type Error struct {
	Op string
}

func (e *Error) Error() string {
	return "log: " + e.Op + ": fatal"
}
