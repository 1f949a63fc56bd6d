// Package humanoid generates a parametric humanoid base mesh: elliptical
// cross-section rings at joint heights, bridged into quads, with capped
// extremities and a subdivision modifier for smoothing.
package humanoid

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidParameter is returned before any geometry is created.
	ErrInvalidParameter = errors.New("humanoid: invalid parameter")

	// ErrSceneNotCleared is returned when the target scene still holds mesh objects.
	ErrSceneNotCleared = errors.New("humanoid: scene still contains mesh objects")
)

// Gender selects the width/depth/head-scale constants.
type Gender int

const (
	Male Gender = iota
	Female
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	}
	return fmt.Sprintf("Gender(%d)", int(g))
}

// ParseGender accepts "male" or "female", case-insensitively.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return Male, nil
	case "female":
		return Female, nil
	}
	return 0, fmt.Errorf("%w: unknown gender %q (want male or female)", ErrInvalidParameter, s)
}

// MarshalText implements encoding.TextMarshaler.
func (g Gender) MarshalText() ([]byte, error) {
	if g != Male && g != Female {
		return nil, fmt.Errorf("%w: gender %d", ErrInvalidParameter, int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Gender) UnmarshalText(b []byte) error {
	v, err := ParseGender(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// Params is the full input of a build.
type Params struct {
	Height       float64 // total height in metres
	Gender       Gender
	Subdivisions int // 0 = low, 1 = medium, 2 = high
	Name         string
}

// DefaultParams is a 1.75 m male at medium smoothing.
func DefaultParams() Params {
	return Params{
		Height:       1.75,
		Gender:       Male,
		Subdivisions: 1,
		Name:         "Humanoid_Base",
	}
}

// Validate checks every field; the first problem wins.
func (p Params) Validate() error {
	if err := p.validateBody(); err != nil {
		return err
	}
	if p.Subdivisions < 0 {
		return fmt.Errorf("%w: subdivisions must be >= 0, got %d", ErrInvalidParameter, p.Subdivisions)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty mesh name", ErrInvalidParameter)
	}
	return nil
}

// validateBody checks the fields proportions depend on.
func (p Params) validateBody() error {
	if math.IsNaN(p.Height) || math.IsInf(p.Height, 0) || p.Height <= 0 {
		return fmt.Errorf("%w: height must be a positive number of metres, got %v", ErrInvalidParameter, p.Height)
	}
	if p.Gender != Male && p.Gender != Female {
		return fmt.Errorf("%w: gender %d", ErrInvalidParameter, int(p.Gender))
	}
	return nil
}
