package common

import "github.com/chewxy/math32"

// Wrap01 folds v into [0, 1). Used for scrolling texture offsets.
func Wrap01(v float32) float32 {
	v -= math32.Floor(v)
	if v >= 1 {
		return 0
	}
	return v
}
