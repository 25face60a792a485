package listview

import (
	"cmp"
	"strconv"
	"strings"
)

// Direction is a sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState is the active column sort. An empty Key leaves input order untouched.
type SortState struct {
	Key       string    `json:"key,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// Request returns the state after a click on key: a repeated ascending key flips to
// descending, anything else sorts ascending.
func (s SortState) Request(key string) SortState {
	if s.Key == key && s.Direction == Asc {
		return SortState{Key: key, Direction: Desc}
	}
	return SortState{Key: key, Direction: Asc}
}

// ParseSort reads a key/direction pair from query parameters.
func ParseSort(key, dir string) SortState {
	key = strings.TrimSpace(key)
	if key == "" {
		return SortState{}
	}
	if strings.EqualFold(dir, string(Desc)) {
		return SortState{Key: key, Direction: Desc}
	}
	return SortState{Key: key, Direction: Asc}
}

// compareValues orders two column values numerically or case-insensitively.
func (s SortState) compareValues(a, b string, numeric bool) int {
	var c int
	if numeric {
		c = cmp.Compare(ParseNumber(a), ParseNumber(b))
	} else {
		c = strings.Compare(strings.ToLower(a), strings.ToLower(b))
	}
	if s.Direction == Desc {
		return -c
	}
	return c
}

// ParseNumber reads the longest leading decimal literal of s. Values without one
// read as 0, so "abc" sorts with zero prices.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func containsFold(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
