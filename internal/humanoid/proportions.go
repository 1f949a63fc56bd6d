package humanoid

// Segment fractions of total height, floor to crown. They sum to 1.
const (
	HeadFrac  = 0.12
	NeckFrac  = 0.03
	TorsoFrac = 0.30
	HipFrac   = 0.08
	ThighFrac = 0.22
	ShinFrac  = 0.20
	FootFrac  = 0.05
)

// FractionSum is the sum of all segment fractions.
const FractionSum = HeadFrac + NeckFrac + TorsoFrac + HipFrac + ThighFrac + ShinFrac + FootFrac

// Frame holds the per-gender width and depth constants, in metres.
type Frame struct {
	ShoulderWidth float64
	HipWidth      float64
	ChestDepth    float64
	HeadScale     float64
}

// FrameFor returns the constants of g.
func FrameFor(g Gender) Frame {
	if g == Female {
		return Frame{ShoulderWidth: 0.40, HipWidth: 0.38, ChestDepth: 0.22, HeadScale: 0.95}
	}
	return Frame{ShoulderWidth: 0.45, HipWidth: 0.35, ChestDepth: 0.25, HeadScale: 1.0}
}

// Ladder is the absolute height of each joint, bottom to top.
type Ladder struct {
	Floor    float64
	Ankle    float64
	Knee     float64
	Hip      float64
	Waist    float64
	Shoulder float64
	NeckBase float64
	HeadTop  float64
}

// Rungs returns the ladder in ascending order.
func (l Ladder) Rungs() []float64 {
	return []float64{l.Floor, l.Ankle, l.Knee, l.Hip, l.Waist, l.Shoulder, l.NeckBase, l.HeadTop}
}

// Chest is the chest ring height, 60% of the way from waist to shoulder.
func (l Ladder) Chest() float64 {
	return l.Waist + (l.Shoulder-l.Waist)*0.6
}

// Resolve computes the joint ladder and width constants for p.
// Only height and gender are consulted. It has no side effects.
func Resolve(p Params) (Ladder, Frame, error) {
	if err := p.validateBody(); err != nil {
		return Ladder{}, Frame{}, err
	}
	h := p.Height
	var l Ladder
	l.Floor = 0
	l.Ankle = l.Floor + FootFrac*h
	l.Knee = l.Ankle + ShinFrac*h
	l.Hip = l.Knee + ThighFrac*h
	l.Waist = l.Hip + HipFrac*h
	l.Shoulder = l.Waist + TorsoFrac*h
	l.NeckBase = l.Shoulder + NeckFrac*h
	l.HeadTop = l.NeckBase + HeadFrac*h
	return l, FrameFor(p.Gender), nil
}

