package machine

import "github.com/jasm-vm/jasm/pkg/isa"

// Decode reads one instruction starting at pc from bus and returns the
// decoded record together with the advanced program counter. The
// decoder is stateless beyond that: it takes pc as a value and hands
// back a new one, rather than owning a cursor, mirroring the teacher's
// preference for functions that return new state over stateful cursor
// objects.
func Decode(bus *Bus, pc uint16) (isa.Decoded, uint16, error) {
	cur := pc
	read := func() (byte, error) {
		b := bus.ReadU8(cur)
		cur++
		return b, nil
	}
	d, err := isa.Decode(read)
	if err != nil {
		return d, pc, err
	}
	return d, cur, nil
}
