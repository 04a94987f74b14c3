package table

// Equal reports whether two schemas have the same columns in the same order.
func Equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SameSet reports whether two schemas have the same columns in any order.
func SameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	missing, unexpected := Diff(a, b)
	return len(missing) == 0 && len(unexpected) == 0
}

// Diff lists the columns of expected absent from got, and the columns of got
// absent from expected. Both results keep the input order.
func Diff(expected, got []string) (missing, unexpected []string) {
	inGot := make(map[string]bool, len(got))
	for _, c := range got {
		inGot[c] = true
	}
	inExpected := make(map[string]bool, len(expected))
	for _, c := range expected {
		inExpected[c] = true
		if !inGot[c] {
			missing = append(missing, c)
		}
	}
	for _, c := range got {
		if !inExpected[c] {
			unexpected = append(unexpected, c)
		}
	}
	return missing, unexpected
}

// Duplicates returns the names that appear more than once, in first-seen order.
func Duplicates(columns []string) []string {
	seen := make(map[string]int, len(columns))
	var dups []string
	for _, c := range columns {
		seen[c]++
		if seen[c] == 2 {
			dups = append(dups, c)
		}
	}
	return dups
}
