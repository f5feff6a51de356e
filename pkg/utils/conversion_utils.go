package utils

import "strconv"

// StrToInt64 parses a base-10 integer, as used for numeric route
// parameters (:id) across the handlers.
func StrToInt64(s string) (int64, error) {
	num, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return num, nil
}
