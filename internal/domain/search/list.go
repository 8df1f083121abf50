package search

import "encoding/json"

// IntList normalizes index fields that arrive either as a scalar or as an
// array. Sparse indexing stores single-valued documents without the wrapper,
// so both shapes must decode to a plain ordered slice.
type IntList []int

// UnmarshalJSON accepts 7, [7] and [7, 8].
func (l *IntList) UnmarshalJSON(data []byte) error {
	var many []int
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one int
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = IntList{one}
	return nil
}

// StringList is the string counterpart of IntList.
type StringList []string

// UnmarshalJSON accepts "a" and ["a", "b"].
func (l *StringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = StringList{one}
	return nil
}
