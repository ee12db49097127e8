package systems

import (
	"math"
)

// Waveform selects one of the wave shape generators.
type Waveform uint8

const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveSawtooth
	WaveSharkFin
	WaveSquare
	WaveNoise

	numWaveforms
)

// NumWaveforms is the number of waveform generators.
const NumWaveforms = int(numWaveforms)

var waveformNames = [...]string{
	WaveSine:     "sine",
	WaveTriangle: "triangle",
	WaveSawtooth: "sawtooth",
	WaveSharkFin: "shark_fin",
	WaveSquare:   "square",
	WaveNoise:    "noise",
}

func (w Waveform) String() string {
	if int(w) < len(waveformNames) {
		return waveformNames[w]
	}
	return "unknown"
}

// Generator maps a panel row to the column the wave crosses it at.
// radianOffset is how many radians span the panel height.
type Generator func(y int, radianOffset float64, w, h int) int

var generators = [...]Generator{
	WaveSine:     SineX,
	WaveTriangle: TriangleX,
	WaveSawtooth: SawtoothX,
	WaveSharkFin: SharkFinX,
	WaveSquare:   SquareX,
	WaveNoise:    NoiseX,
}

// X evaluates the waveform's generator.
func (w Waveform) X(y int, radianOffset float64, width, height int) int {
	return generators[w](y, radianOffset, width, height)
}

func phase(y int, radianOffset float64, h int) float64 {
	return float64(y) / float64(h) * radianOffset
}

// toColumn maps an amplitude in [-1, 1] onto [0, w-1].
func toColumn(v float64, w int) int {
	return int(math.Round((v + 1) / 2 * float64(w-1)))
}

// SineX is a plain sine.
func SineX(y int, radianOffset float64, w, h int) int {
	return toColumn(math.Sin(phase(y, radianOffset, h)), w)
}

// TriangleX folds the sine into linear ramps.
func TriangleX(y int, radianOffset float64, w, h int) int {
	v := 2 * math.Asin(math.Sin(phase(y, radianOffset, h))) / math.Pi
	return toColumn(v, w)
}

// SawtoothX ramps from -1 to 1 each period and snaps back.
func SawtoothX(y int, radianOffset float64, w, h int) int {
	p := phase(y, radianOffset, h) / (2 * math.Pi)
	return toColumn(2*(p-math.Floor(p+0.5)), w)
}

// sharkRise is the fraction of a shark-fin period spent rising.
const sharkRise = 0.18

// SharkFinX rises linearly for the first part of the period and falls back
// along a half cosine.
func SharkFinX(y int, radianOffset float64, w, h int) int {
	p := math.Mod(phase(y, radianOffset, h), 2*math.Pi) / (2 * math.Pi)
	if p < 0 {
		p++
	}
	var v float64
	if p < sharkRise {
		v = p / sharkRise
	} else {
		fall := (p - sharkRise) / (1 - sharkRise)
		v = math.Cos(fall*math.Pi)*0.5 + 0.5
	}
	return toColumn(v*2-1, w)
}

// SquareX sits at either edge depending on the sign of the sine.
func SquareX(y int, radianOffset float64, w, h int) int {
	v := -1.0
	if math.Sin(phase(y, radianOffset, h)) >= 0 {
		v = 1
	}
	return toColumn(v, w)
}

// NoiseX cosine-interpolates between hashed control points, one per
// period. The same inputs always give the same column.
func NoiseX(y int, radianOffset float64, w, h int) int {
	period := 2 * math.Pi * float64(h) / radianOffset
	if period < 2 {
		period = 2
	}

	seg := int(math.Floor(float64(y) / period))
	t := (float64(y) - float64(seg)*period) / period
	smooth := (1 - math.Cos(t*math.Pi)) / 2

	x0 := int(noiseHash(seg, radianOffset) % uint32(w))
	x1 := int(noiseHash(seg+1, radianOffset) % uint32(w))
	return x0 + int(smooth*float64(x1-x0))
}

func noiseHash(seg int, radianOffset float64) uint32 {
	seed := uint32(seg+1) * 2654435761
	seed ^= uint32(radianOffset*100) * 2246822519
	seed ^= seed >> 16
	seed *= 0x45d9f3b
	seed ^= seed >> 16
	return seed
}
