package apds9960

import "context"

// Direction is a decoded swipe direction. DirectionNone means "no confident
// gesture", not an error.
type Direction byte

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (g Direction) String() string {
	switch g {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

const (
	// fifoCapacity bounds the number of datasets kept per decode call; the
	// hardware FIFO holds at most 32 datasets as well.
	fifoCapacity  = 32
	fifoBufferLen = 4 * fifoCapacity

	// channel values below the cross-talk floor are sensor noise, not signal
	crosstalkFloor = 30

	// a ratio swing smaller than this is not counted as movement on an axis
	deltaThreshold = 30
)

// sample is one gesture FIFO dataset: four photodiode readings taken during a
// single gesture cycle.
type sample struct {
	up    byte
	down  byte
	left  byte
	right byte
}

// usable rejects datasets that carry no directional information: any channel
// below the cross-talk floor, the all-zero dataset (sensor not settled) and
// the all-255 dataset (saturated).
func (s sample) usable() bool {
	if s.up < crosstalkFloor || s.down < crosstalkFloor || s.left < crosstalkFloor || s.right < crosstalkFloor {
		return false
	}
	if s.up == 0 && s.down == 0 && s.left == 0 && s.right == 0 {
		return false
	}
	if s.up == 255 && s.down == 255 && s.left == 255 && s.right == 255 {
		return false
	}
	return true
}

// ratio is the normalized signed difference of two opposing channels, scaled
// to +-100. It estimates direction independent of absolute light level. The
// filter guarantees a+b >= 60 for buffered samples; the zero-sum guard keeps
// the classifier total when it is fed unfiltered data.
func ratio(a, b byte) int {
	sum := int(a) + int(b)
	if sum == 0 {
		return 0
	}
	return (int(a) - int(b)) * 100 / sum
}

func triState(delta int) int {
	switch {
	case delta >= deltaThreshold:
		return 1
	case delta <= -deltaThreshold:
		return -1
	default:
		return 0
	}
}

// classify maps the tri-state pair of axis deltas to a direction. Diagonal
// states are broken by the axis with the larger absolute delta; on an exact
// tie the left/right axis wins.
func classify(deltaUD, deltaLR int) Direction {
	ud := abs(deltaUD) > abs(deltaLR)
	switch [2]int{triState(deltaUD), triState(deltaLR)} {
	case [2]int{-1, 0}:
		return DirectionUp
	case [2]int{1, 0}:
		return DirectionDown
	case [2]int{0, -1}:
		return DirectionLeft
	case [2]int{0, 1}:
		return DirectionRight
	case [2]int{-1, 1}:
		if ud {
			return DirectionUp
		}
		return DirectionRight
	case [2]int{1, -1}:
		if ud {
			return DirectionDown
		}
		return DirectionLeft
	case [2]int{-1, -1}:
		if ud {
			return DirectionUp
		}
		return DirectionLeft
	case [2]int{1, 1}:
		if ud {
			return DirectionDown
		}
		return DirectionRight
	default:
		return DirectionNone
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// DecodeGesture drains the gesture FIFO and classifies a swipe direction.
//
// It returns ErrNotReady when no gesture data is valid yet; that is the only
// suspension point and the call leaves no state behind, so the caller can
// simply poll again at its own cadence. A bus error aborts the call and
// discards the partially drained data. DirectionNone with a nil error means
// the FIFO was drained but its contents did not amount to a confident gesture.
func (d *Device) DecodeGesture(ctx context.Context) (Direction, error) {
	valid, err := d.IsGestureDataValid(ctx)
	if err != nil {
		return DirectionNone, err
	}
	if !valid {
		return DirectionNone, ErrNotReady
	}

	var samples [fifoCapacity]sample
	count := 0

	for count < len(samples) {
		valid, err := d.IsGestureDataValid(ctx)
		if err != nil {
			return DirectionNone, err
		}
		if !valid {
			break
		}

		level, err := d.GestureDataLevel(ctx)
		if err != nil {
			return DirectionNone, err
		}
		if level == 0 {
			break
		}

		byteCount := 4 * int(level)
		if remaining := 4 * (len(samples) - count); byteCount > remaining {
			// the buffer is nearly full; whatever else the FIFO holds for
			// this cycle is dropped rather than buffered
			byteCount = remaining
		}
		n, err := d.readRegisterBlock(ctx, regGFIFOU, d.fifo[:byteCount])
		if err != nil {
			return DirectionNone, err
		}

		for off := 0; off+4 <= n; off += 4 {
			s := sample{up: d.fifo[off], down: d.fifo[off+1], left: d.fifo[off+2], right: d.fifo[off+3]}
			if !s.usable() {
				continue
			}
			samples[count] = s
			count++
		}
		if n < byteCount {
			// the device delivered less than the fill level advertised
			break
		}
	}

	if count < 2 {
		// not enough evidence for a direction
		return DirectionNone, nil
	}

	first, last := samples[0], samples[count-1]
	deltaUD := ratio(last.up, last.down) - ratio(first.up, first.down)
	deltaLR := ratio(last.left, last.right) - ratio(first.left, first.right)

	return d.rotate(classify(deltaUD, deltaLR)), nil
}

// rotationSequence is the cyclic order used to remap directions by the
// configured mounting rotation.
var rotationSequence = [4]Direction{DirectionUp, DirectionRight, DirectionDown, DirectionLeft}

func (d *Device) rotate(g Direction) Direction {
	if d.rotation == 0 || g == DirectionNone {
		return g
	}
	idx := 0
	for i, dir := range rotationSequence {
		if dir == g {
			idx = i
			break
		}
	}
	return rotationSequence[(idx+d.rotation/90)%4]
}

// SetRotation sets the mounting rotation applied to every decoded direction.
// Only 0, 90, 180 and 270 degrees are accepted; anything else returns
// ErrInvalidRotation and keeps the previous setting.
func (d *Device) SetRotation(degrees int) error {
	switch degrees {
	case 0, 90, 180, 270:
		d.rotation = degrees
		return nil
	default:
		return ErrInvalidRotation
	}
}

// Rotation returns the configured mounting rotation in degrees.
func (d *Device) Rotation() int {
	return d.rotation
}
