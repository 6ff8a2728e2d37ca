package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// StrFromPtr returns *p, or the fallback when p is nil.
func StrFromPtr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
