package genome

// DetectType classifies a sequence by checking every symbol against the
// DNA alphabet, then the RNA alphabet. Anything else is protein.
// An empty sequence is Unknown.
func DetectType(seq string) SequenceType {
	if seq == "" {
		return Unknown
	}
	if onlyAlphabet(seq, "ATCGN") {
		return DNA
	}
	if onlyAlphabet(seq, "AUCGN") {
		return RNA
	}
	return Protein
}

func onlyAlphabet(seq string, alphabet string) bool {
	var allowed [256]bool
	for i := 0; i < len(alphabet); i++ {
		allowed[alphabet[i]] = true
		allowed[alphabet[i]+('a'-'A')] = true
	}
	for i := 0; i < len(seq); i++ {
		if !allowed[seq[i]] {
			return false
		}
	}
	return true
}
