package dialogue

// Speaker identifies one of the two dialogue hosts.
type Speaker int

const (
	HostA Speaker = iota
	HostB
)

// String returns the canonical speaker name.
func (s Speaker) String() string {
	switch s {
	case HostA:
		return "HostA"
	case HostB:
		return "HostB"
	default:
		return "Unknown"
	}
}

// Turn is one attributed utterance by one speaker. Turns are immutable
// once produced by the parser and their order is significant.
type Turn struct {
	Speaker Speaker
	Text    string
}
