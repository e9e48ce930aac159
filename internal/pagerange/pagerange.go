package pagerange

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidRange = errors.New("invalid page range")

// Spec selects pages the way a slice expression does: Start inclusive,
// Stop exclusive (nil means through the last page), every Step-th page.
type Spec struct {
	Start int
	Stop  *int
	Step  int
}

// All selects every page of a document.
func All() Spec {
	return Spec{Step: 1}
}

func StopAt(stop int) *int {
	return &stop
}

func (s Spec) Validate() error {
	if s.Start < 0 {
		return fmt.Errorf("%w: start %d is negative", ErrInvalidRange, s.Start)
	}
	if s.Stop != nil && *s.Stop < 0 {
		return fmt.Errorf("%w: stop %d is negative", ErrInvalidRange, *s.Stop)
	}
	if s.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidRange, s.Step)
	}
	return nil
}

func (s Spec) String() string {
	stop := ""
	if s.Stop != nil {
		stop = strconv.Itoa(*s.Stop)
	}
	return fmt.Sprintf("%d:%s:%d", s.Start, stop, s.Step)
}

// Resolve returns the zero-based page indices spec selects from a document
// of pageCount pages. A start at or past the effective stop yields an empty
// slice.
func Resolve(pageCount int, spec Spec) ([]int, error) {
	if pageCount < 0 {
		return nil, fmt.Errorf("%w: page count %d is negative", ErrInvalidRange, pageCount)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	stop := pageCount
	if spec.Stop != nil && *spec.Stop < pageCount {
		stop = *spec.Stop
	}
	if spec.Start >= stop {
		return []int{}, nil
	}

	// k*Step stays below stop-Start, so indices cannot overflow.
	n := (stop-spec.Start-1)/spec.Step + 1
	pages := make([]int, n)
	for k := range pages {
		pages[k] = spec.Start + k*spec.Step
	}
	return pages, nil
}

// Parse reads "start:stop:step" where every part may be omitted, so "",
// "3:", ":10" and "::2" are all valid. A bare number selects that single
// page.
func Parse(value string) (Spec, error) {
	spec := All()
	value = strings.TrimSpace(value)
	if value == "" {
		return spec, nil
	}

	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return Spec{}, fmt.Errorf("%w: %q has more than three parts", ErrInvalidRange, value)
	}

	start, err := parsePart(parts[0], "start")
	if err != nil {
		return Spec{}, err
	}
	if start != nil {
		spec.Start = *start
	}

	if len(parts) == 1 {
		if start == nil {
			return spec, nil
		}
		if spec.Start == math.MaxInt {
			return Spec{}, fmt.Errorf("%w: page %d is out of range", ErrInvalidRange, spec.Start)
		}
		spec.Stop = StopAt(spec.Start + 1)
		return spec, spec.Validate()
	}

	stop, err := parsePart(parts[1], "stop")
	if err != nil {
		return Spec{}, err
	}
	spec.Stop = stop

	if len(parts) == 3 {
		step, err := parsePart(parts[2], "step")
		if err != nil {
			return Spec{}, err
		}
		if step != nil {
			spec.Step = *step
		}
	}

	return spec, spec.Validate()
}

func parsePart(raw, name string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidRange, name, raw)
	}
	return &n, nil
}
