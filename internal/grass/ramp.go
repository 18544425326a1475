package grass

// Ramp is the per-vertex height signal handed to the shading stage through
// the color attribute. Shaders read it as a 0..1 scalar, not as a color.
type Ramp uint8

const (
	RampBase Ramp = iota // ground contact, black
	RampMid              // half height, gray
	RampTip              // blade tip, white
)

var rampColors = [...][3]float32{
	RampBase: {0, 0, 0},
	RampMid:  {0.5, 0.5, 0.5},
	RampTip:  {1, 1, 1},
}

// slotRamps assigns a ramp level to each blade vertex slot.
var slotRamps = [VerticesPerBlade]Ramp{
	SlotBottomLeft:  RampBase,
	SlotBottomRight: RampBase,
	SlotMidRight:    RampMid,
	SlotMidLeft:     RampMid,
	SlotTip:         RampTip,
}

// Color returns the vertex color encoding of the ramp level.
func (r Ramp) Color() [3]float32 {
	return rampColors[r]
}

// Value returns the scalar the shader recovers from the color.
func (r Ramp) Value() float32 {
	return rampColors[r][0]
}

func (r Ramp) String() string {
	switch r {
	case RampBase:
		return "base"
	case RampMid:
		return "mid"
	case RampTip:
		return "tip"
	}
	return "unknown"
}

// SlotRamp returns the ramp level of a blade vertex slot.
func SlotRamp(slot int) Ramp {
	return slotRamps[slot]
}
