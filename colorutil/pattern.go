package colorutil

const PatternSolid = "solid"

var clashingPatterns = [][2]string{
	{"stripes", "plaid"},
	{"stripes", "stripes"},
	{"plaid", "plaid"},
	{"floral", "geometric"},
	{"animal-print", "floral"},
	{"polka-dots", "stripes"},
}

// DoPatternsClash is symmetric. Missing or solid patterns never clash.
func DoPatternsClash(pattern1, pattern2 string) bool {
	if pattern1 == "" || pattern2 == "" {
		return false
	}
	if pattern1 == PatternSolid || pattern2 == PatternSolid {
		return false
	}

	for _, combo := range clashingPatterns {
		if (pattern1 == combo[0] && pattern2 == combo[1]) ||
			(pattern1 == combo[1] && pattern2 == combo[0]) {
			return true
		}
	}
	return false
}
