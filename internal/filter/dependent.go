package filter

// ResetIfInvalid returns current when it is still among valid, and "" when
// it is not. Unset values pass through unchanged.
func ResetIfInvalid(current string, valid []string) string {
	if Unset(current) {
		return current
	}
	for _, v := range valid {
		if v == current {
			return current
		}
	}
	return ""
}
