package utils

// NewNullString turns an empty string into a nil pointer, for optional
// query/filter values that should be absent rather than "".
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
