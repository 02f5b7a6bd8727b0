package panel

// Patterns is the fixed list of patterns built into the device firmware.
// The device identifies a pattern by its position, so order is part of the
// wire contract.
var Patterns = [...]string{
	"Aurora Cascade",
	"Neon Pulse",
	"Digital Rain",
	"Mystic Waves",
	"Rainbow Flow",
	"Starlight Twinkle",
	"Ocean Waves",
	"Fire Dance",
	"Matrix Code",
	"Heartbeat",
	"Color Symphony",
	"Binary Counter",
	"Gentle Breeze",
	"Northern Lights",
	"Cyber Pulse",
	"Rainbow Chase",
	"Morse Code SOS",
	"Fibonacci Sequence",
	"Color Meditation",
	"Quantum Entanglement",
}

// NumPatterns is the number of predefined patterns
const NumPatterns = len(Patterns)

// PatternName returns the name at index i, or "" if out of range
func PatternName(i int) string {
	if i < 0 || i >= NumPatterns {
		return ""
	}
	return Patterns[i]
}

// ValidPattern reports whether i addresses a predefined pattern
func ValidPattern(i int) bool {
	return i >= 0 && i < NumPatterns
}
