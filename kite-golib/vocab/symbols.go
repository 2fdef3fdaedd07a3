package vocab

// Special symbols reserved at the head of every vocabulary
const (
	Pad = "PAD"
	Go  = "GO"
	EOS = "EOS"
	Unk = "UNK"
)

// Ids of the special symbols; they are the same in every vocabulary.
const (
	PadID = iota
	GoID
	EOSID
	UnkID
)

// StartVocab is the fixed prefix of every vocabulary, in id order
var StartVocab = []string{Pad, Go, EOS, Unk}

// IsSpecial returns true if tok is one of the reserved symbols
func IsSpecial(tok string) bool {
	switch tok {
	case Pad, Go, EOS, Unk:
		return true
	}
	return false
}
