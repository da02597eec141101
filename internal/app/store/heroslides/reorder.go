// internal/app/store/heroslides/reorder.go
package heroslides

import "github.com/ydpps/schoolcms/internal/domain/models"

// Direction is the requested move direction for a slide.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// IsValidDirection checks if a direction value is "up" or "down".
func IsValidDirection(d Direction) bool {
	return d == MoveUp || d == MoveDown
}

// PlanMove computes the new display sequence after moving the slide at index
// one position in the given direction. The input must already be sorted by
// order ascending. It returns a copy with every Order field recomputed as the
// new positional index, so the result is contiguous 0..n-1 by construction.
//
// Moving the first slide up or the last slide down is a no-op; ok is false
// and no plan is returned.
func PlanMove(slides []models.HeroSlide, index int, direction Direction) (planned []models.HeroSlide, ok bool) {
	if index < 0 || index >= len(slides) {
		return nil, false
	}

	target := index + 1
	if direction == MoveUp {
		target = index - 1
	}
	if target < 0 || target >= len(slides) {
		return nil, false
	}

	planned = make([]models.HeroSlide, len(slides))
	copy(planned, slides)
	planned[index], planned[target] = planned[target], planned[index]

	for i := range planned {
		planned[i].Order = i
	}
	return planned, true
}
