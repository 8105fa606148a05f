package catalog

// diceCoefficient measures similarity between two strings as the Sørensen–
// Dice coefficient over character bigrams. 1 means identical bigram sets,
// 0 means none shared. Inputs are expected to be normalized already.
func diceCoefficient(a, b string) float64 {
	if a == b {
		return 1
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) < 2 || len(rb) < 2 {
		return 0
	}

	bigrams := make(map[string]int, len(ra)-1)
	for i := 0; i < len(ra)-1; i++ {
		bigrams[string(ra[i:i+2])]++
	}

	matches := 0
	for i := 0; i < len(rb)-1; i++ {
		bg := string(rb[i : i+2])
		if bigrams[bg] > 0 {
			bigrams[bg]--
			matches++
		}
	}

	return 2 * float64(matches) / float64(len(ra)-1+len(rb)-1)
}
