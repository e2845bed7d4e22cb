package game

import "github.com/hollowvale/mud/internal/text"

// ExposureMax caps each exposure channel.
const ExposureMax = 10

// ExposureStatus tracks how the weather has been treating one entity.
// Channels accumulate while the entity is outdoors in active weather and
// decay one point per tick otherwise. All values sit in [0, ExposureMax].
type ExposureStatus struct {
	Wetness int `json:"wetness,omitempty"`
	Cold    int `json:"cold,omitempty"`
	Heat    int `json:"heat,omitempty"`

	// LastTick guards against double accumulation when several command
	// paths trigger the same tick.
	LastTick int64 `json:"last_tick,omitempty"`
}

// NewExposureStatus creates an all-zero tracker.
func NewExposureStatus() *ExposureStatus {
	return &ExposureStatus{}
}

// Update advances the tracker for one tick. Calling it again with the same
// (or an older) tick number is a no-op, so every command path may call it
// safely.
//
// Outdoors in active weather, the channels implied by the weather type gain
// the intensity's step (light 1, moderate 2, heavy 3). Anywhere else, every
// nonzero channel decays by one.
func (e *ExposureStatus) Update(tick int64, weather Weather, outdoor bool) {
	if tick <= e.LastTick {
		return
	}
	e.LastTick = tick

	step := weather.Intensity.Step()
	if outdoor && step > 0 {
		wet, cold, heat := weather.Type.exposureChannels()
		if wet || cold || heat {
			if wet {
				e.Wetness = min(ExposureMax, e.Wetness+step)
			}
			if cold {
				e.Cold = min(ExposureMax, e.Cold+step)
			}
			if heat {
				e.Heat = min(ExposureMax, e.Heat+step)
			}
			return
		}
	}

	e.Wetness = max(0, e.Wetness-1)
	e.Cold = max(0, e.Cold-1)
	e.Heat = max(0, e.Heat-1)
}

// Zero reports whether every channel is at rest.
func (e *ExposureStatus) Zero() bool {
	return e.Wetness == 0 && e.Cold == 0 && e.Heat == 0
}

// Describe returns a status sentence keyed by the highest channel, phrased
// for the given pronouns, or "" when all channels are zero. The sentence
// depends only on accumulated state, never on where the entity is standing
// now.
func (e *ExposureStatus) Describe(p Pronouns) string {
	value := e.Wetness
	channel := "wetness"
	if e.Cold > value {
		value = e.Cold
		channel = "cold"
	}
	if e.Heat > value {
		value = e.Heat
		channel = "heat"
	}
	if value == 0 {
		return ""
	}

	var s string
	switch channel {
	case "wetness":
		switch {
		case value <= 2:
			s = p.Subjective + " look" + thirdS(p) + " a bit damp."
		case value <= 4:
			s = "You can tell " + p.Subjective + " " + hasHave(p) + " been standing in the rain for a while."
		case value <= 7:
			s = p.Subjective + " look" + thirdS(p) + " thoroughly soaked through."
		default:
			s = p.Subjective + " " + p.Is + " absolutely drenched from head to toe."
		}
	case "cold":
		switch {
		case value <= 2:
			s = p.Subjective + " look" + thirdS(p) + " slightly chilled."
		case value <= 4:
			s = p.Subjective + " " + p.Is + " shivering against the cold."
		case value <= 7:
			s = p.Subjective + " look" + thirdS(p) + " chilled to the bone."
		default:
			s = p.Subjective + " " + p.Is + " blue-lipped and shaking with cold."
		}
	default:
		switch {
		case value <= 2:
			s = p.Subjective + " look" + thirdS(p) + " a little flushed."
		case value <= 4:
			s = p.Subjective + " " + p.Is + " sweating in the heat."
		case value <= 7:
			s = p.Subjective + " look" + thirdS(p) + " overheated and weary."
		default:
			s = p.Subjective + " " + p.Is + " dangerously overcome by the heat."
		}
	}
	return text.Capitalize(s)
}

// thirdS returns "s" for third-person-singular agreement ("she looks") and
// "" otherwise ("you look", "they look").
func thirdS(p Pronouns) string {
	if p.Is == "is" {
		return "s"
	}
	return ""
}

func hasHave(p Pronouns) string {
	if p.Is == "is" {
		return "has"
	}
	return "have"
}
