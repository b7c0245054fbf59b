package rtrand

// StepSource is a mock generator for tests: Uint64 returns Value and then adds
// Increment, so the outputs are v, v+a, v+2a, ... (wrapping).
// Uint32 is the low half of one step and Fill uses little-endian steps.
// Draws counts the steps taken.
type StepSource struct {
	Value     uint64
	Increment uint64
	Draws     int
}

// NewStepSource returns a StepSource starting at v with increment a.
func NewStepSource(v, a uint64) *StepSource {
	return &StepSource{Value: v, Increment: a}
}

// Uint64 returns Value and advances it by Increment.
func (s *StepSource) Uint64() uint64 {
	v := s.Value
	s.Value += s.Increment
	s.Draws++
	return v
}

// Uint32 returns the low half of one step.
func (s *StepSource) Uint32() uint32 {
	return uint32(s.Uint64())
}

// Fill fills p with little-endian steps.
func (s *StepSource) Fill(p []byte) {
	FillViaUint64(s, p)
}

// Clone copies the current value, increment and draw count.
func (s *StepSource) Clone() Source {
	c := *s
	return &c
}
