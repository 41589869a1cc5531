package attack

// Phase selects what the scheduler is guessing.
type Phase int

const (
	// PhaseCharacter guesses one plaintext byte.
	PhaseCharacter Phase = iota
	// PhasePadLength guesses the pad length. It is used once, for the last
	// byte of the final block.
	PhasePadLength
)

func (p Phase) String() string {
	switch p {
	case PhaseCharacter:
		return "character"
	case PhasePadLength:
		return "pad-length"
	default:
		return "unknown"
	}
}

// englishOrder is the most likely bytes of English text, most likely first.
const englishOrder = " etaonisrhldcupfmwybgvkqxjz" +
	"ETAONISRHLDCUPFMWYBGVKQXJZ" +
	",.!" +
	"0123456789" +
	"'\"-?:;()/&@#$%*+=_<>[]{}|\\^`~" +
	"\n\r\t"

// DefaultCandidateOrder returns englishOrder followed by every other byte
// value, so that binary plaintext is still recoverable.
func DefaultCandidateOrder() []byte {
	order := make([]byte, 0, 256)
	seen := make([]bool, 256)
	for _, c := range []byte(englishOrder) {
		order = append(order, c)
		seen[c] = true
	}
	for c := 0; c < 256; c++ {
		if !seen[c] {
			order = append(order, byte(c))
		}
	}
	return order
}

// Scheduler hands out guesses in the order they should be probed.
type Scheduler struct {
	order []byte
	pads  []byte
}

// NewScheduler builds a scheduler from a candidate order. Duplicates are
// dropped. An empty order means DefaultCandidateOrder.
func NewScheduler(order []byte, blockSize int) Scheduler {
	if len(order) == 0 {
		order = DefaultCandidateOrder()
	}

	s := Scheduler{
		order: make([]byte, 0, len(order)),
		pads:  make([]byte, 0, blockSize),
	}
	seen := make([]bool, 256)
	for _, c := range order {
		if !seen[c] {
			s.order = append(s.order, c)
			seen[c] = true
		}
	}
	for n := 1; n <= blockSize; n++ {
		s.pads = append(s.pads, byte(n))
	}
	return s
}

// NextCandidates returns the guesses for phase, most likely first. The slice
// is shared and must not be modified.
func (s Scheduler) NextCandidates(phase Phase) []byte {
	if phase == PhasePadLength {
		return s.pads
	}
	return s.order
}
