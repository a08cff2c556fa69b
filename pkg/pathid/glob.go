package pathid

// MatchGlob reports whether name matches the glob pattern, where "*" matches
// any run of characters (including none) and "?" matches exactly one
// character. Matching is rune-aware so multi-byte (e.g. CJK) names behave
// the way a user typing the pattern would expect.
//
// This is not filepath.Match: pattern and name are treated as opaque
// strings, not OS paths, so "/" has no special meaning to the matcher -
// callers decide whether to match a basename or a full relative path.
func MatchGlob(pattern, name string) bool {
	p := []rune(pattern)
	s := []rune(name)
	return matchGlob(p, s)
}

func matchGlob(p, s []rune) bool {
	// Standard greedy backtracking glob matcher over "*" and "?".
	var pIdx, sIdx, starIdx, sTmpIdx int
	starIdx, sTmpIdx = -1, -1

	for sIdx < len(s) {
		switch {
		case pIdx < len(p) && (p[pIdx] == '?' || p[pIdx] == s[sIdx]):
			pIdx++
			sIdx++
		case pIdx < len(p) && p[pIdx] == '*':
			starIdx = pIdx
			sTmpIdx = sIdx
			pIdx++
		case starIdx != -1:
			pIdx = starIdx + 1
			sTmpIdx++
			sIdx = sTmpIdx
		default:
			return false
		}
	}

	for pIdx < len(p) && p[pIdx] == '*' {
		pIdx++
	}

	return pIdx == len(p)
}
