package helpers

import "unicode/utf8"

// TypoDetector suggests a known word for a word that is one edit away from
// it. Words of three characters or fewer are never suggested.
type TypoDetector struct {
	valid        map[string]bool
	oneCharTypos map[string]string
}

func MakeTypoDetector(valid []string) TypoDetector {
	detector := TypoDetector{
		valid:        make(map[string]bool),
		oneCharTypos: make(map[string]string),
	}

	// Add all combinations of each valid word with one character missing
	for _, correct := range valid {
		if len(correct) > 3 {
			detector.valid[correct] = true
			for i, ch := range correct {
				detector.oneCharTypos[correct[:i]+correct[i+utf8.RuneLen(ch):]] = correct
			}
		}
	}

	return detector
}

func (detector TypoDetector) MaybeCorrectTypo(typo string) (string, bool) {
	// Check for a single deleted character
	if corrected, ok := detector.oneCharTypos[typo]; ok {
		return corrected, true
	}

	for i, ch := range typo {
		without := typo[:i] + typo[i+utf8.RuneLen(ch):]

		// Check for a single inserted character
		if detector.valid[without] {
			return without, true
		}

		// Check for a single misplaced or replaced character
		if corrected, ok := detector.oneCharTypos[without]; ok {
			return corrected, true
		}
	}

	return "", false
}
