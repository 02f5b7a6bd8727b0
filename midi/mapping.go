package midi

// Mapping binds control-surface numbers to panel actions
type Mapping struct {
	KnobCCs     []int // KnobCCs[i] drives template channel i
	PadBaseNote int   // note of pattern 0; pattern i is PadBaseNote+i
	NumPatterns int
}

// Channel returns the template channel driven by cc
func (m Mapping) Channel(cc uint8) (int, bool) {
	for i, c := range m.KnobCCs {
		if c == int(cc) {
			return i, true
		}
	}
	return 0, false
}

// Pattern returns the predefined pattern addressed by note
func (m Mapping) Pattern(note uint8) (int, bool) {
	i := int(note) - m.PadBaseNote
	if i < 0 || i >= m.NumPatterns {
		return 0, false
	}
	return i, true
}
