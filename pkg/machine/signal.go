package machine

// Signal reports the outcome of one CPU.Step call that isn't itself an
// error: execution either continues, or the machine has reached a state
// the debug shell needs to react to. Signals are never errors — a
// decode failure or an unimplemented opcode is reported as an error
// instead, per spec.md's split between state signals and errors.
type Signal int

const (
	// SignalRunning means Step executed one instruction normally.
	SignalRunning Signal = iota
	// SignalHalted means the CPU executed HALT (or was already halted);
	// further Step calls are no-ops that keep returning SignalHalted.
	SignalHalted
)

func (s Signal) String() string {
	switch s {
	case SignalRunning:
		return "running"
	case SignalHalted:
		return "halted"
	default:
		return "?"
	}
}
