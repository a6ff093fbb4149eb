package order

// next lists the only status each status may move to.
var next = map[Status]Status{
	StatusPending: StatusWashing,
	StatusWashing: StatusReady,
	StatusReady:   StatusPickedUp,
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusWashing, StatusReady, StatusPickedUp:
		return st, nil
	}
	return "", ErrUnknownStatus
}

// CanTransition reports whether to is the successor of from.
func CanTransition(from, to Status) bool {
	return next[from] == to
}
