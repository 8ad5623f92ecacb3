package conservation

// Symbols is the scored alphabet: the 20 canonical amino acids plus gap.
const Symbols = "ARNDCQEGHILKMFPSTWYV-"

// Size is the alphabet size.
const Size = len(Symbols)

// GapIndex is the position of the gap symbol in Symbols.
const GapIndex = Size - 1

var symbolIndex = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(Symbols); i++ {
		c := Symbols[i]
		t[c] = int8(i)
		if c >= 'A' && c <= 'Z' {
			t[c+'a'-'A'] = int8(i)
		}
	}
	return t
}()

// Index returns the alphabet position of b (case-insensitive).
func Index(b byte) (int, bool) {
	i := symbolIndex[b]
	return int(i), i >= 0
}
