package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pixil98/go-errors"
)

// WeatherType enumerates the sky's moods.
type WeatherType string

const (
	WeatherClear    WeatherType = "clear"
	WeatherRain     WeatherType = "rain"
	WeatherSnow     WeatherType = "snow"
	WeatherStorm    WeatherType = "storm"
	WeatherFog      WeatherType = "fog"
	WeatherWindy    WeatherType = "windy"
	WeatherSleet    WeatherType = "sleet"
	WeatherHeatwave WeatherType = "heatwave"
)

// WeatherTypes lists every valid weather type.
var WeatherTypes = []WeatherType{
	WeatherClear, WeatherRain, WeatherSnow, WeatherStorm,
	WeatherFog, WeatherWindy, WeatherSleet, WeatherHeatwave,
}

// ParseWeatherType matches a player-supplied string to a weather type.
func ParseWeatherType(s string) (WeatherType, error) {
	for _, wt := range WeatherTypes {
		if string(wt) == s {
			return wt, nil
		}
	}
	return "", fmt.Errorf("unknown weather type %q", s)
}

// exposureChannels reports which exposure channels this weather feeds.
// Fog and wind touch none; they change the scenery, not the skin.
func (wt WeatherType) exposureChannels() (wet, cold, heat bool) {
	switch wt {
	case WeatherRain, WeatherStorm:
		return true, false, false
	case WeatherSnow, WeatherSleet:
		return true, true, false
	case WeatherHeatwave:
		return false, false, true
	default:
		return false, false, false
	}
}

// Intensity grades how hard the weather is coming down.
type Intensity string

const (
	IntensityNone     Intensity = "none"
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityHeavy    Intensity = "heavy"
)

// ParseIntensity matches a player-supplied string to an intensity.
func ParseIntensity(s string) (Intensity, error) {
	switch Intensity(s) {
	case IntensityNone, IntensityLight, IntensityModerate, IntensityHeavy:
		return Intensity(s), nil
	}
	return "", fmt.Errorf("unknown intensity %q", s)
}

// Step returns the per-tick exposure accumulation for this intensity.
func (i Intensity) Step() int {
	switch i {
	case IntensityLight:
		return 1
	case IntensityModerate:
		return 2
	case IntensityHeavy:
		return 3
	default:
		return 0
	}
}

// Weather is the authoritative (type, intensity) pair.
type Weather struct {
	Type      WeatherType `json:"type"`
	Intensity Intensity   `json:"intensity"`
}

// Season divides the year into four equal parts.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

var seasonOrder = []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// TimeOfDay partitions the day around the season's sunrise and sunset.
type TimeOfDay string

const (
	TimeDawn  TimeOfDay = "dawn"
	TimeDay   TimeOfDay = "day"
	TimeDusk  TimeOfDay = "dusk"
	TimeNight TimeOfDay = "night"
)

const minutesPerDay = 24 * 60

// sunTimes returns the minute-of-day of sunrise and sunset for a season.
func sunTimes(s Season) (sunrise, sunset int) {
	switch s {
	case SeasonSummer:
		return 5 * 60, 20 * 60
	case SeasonAutumn:
		return 6*60 + 30, 17*60 + 30
	case SeasonWinter:
		return 7*60 + 30, 16*60 + 30
	default:
		return 6 * 60, 18 * 60
	}
}

// twilightHalf is the half-width of the dawn and dusk windows in game minutes.
const twilightHalf = 30

// Calendar configures how wall-clock time maps onto game time.
type Calendar struct {
	// SecondsPerGameMinute is the number of real seconds per game minute.
	SecondsPerGameMinute float64 `json:"seconds_per_game_minute"`

	// DaysPerSeason is the length of each of the four seasons.
	DaysPerSeason int `json:"days_per_season"`
}

// DefaultCalendar runs the world at ten real seconds per game minute with a
// 120-day year.
func DefaultCalendar() Calendar {
	return Calendar{SecondsPerGameMinute: 10, DaysPerSeason: 30}
}

// Validate satisfies storage.ValidatingSpec.
func (c *Calendar) Validate() error {
	el := errors.NewErrorList()
	if c.SecondsPerGameMinute <= 0 {
		el.Add(fmt.Errorf("seconds_per_game_minute must be positive"))
	}
	if c.DaysPerSeason <= 0 {
		el.Add(fmt.Errorf("days_per_season must be positive"))
	}
	return el.Err()
}

// AtmosphereState is the serializable snapshot of the atmosphere, used to
// survive process restarts.
type AtmosphereState struct {
	Minutes   int64       `json:"minutes"`
	Weather   WeatherType `json:"weather"`
	Intensity Intensity   `json:"intensity"`
	Locked    bool        `json:"locked"`
}

// Validate satisfies storage.ValidatingSpec.
func (s *AtmosphereState) Validate() error {
	el := errors.NewErrorList()
	if s.Minutes < 0 {
		el.Add(fmt.Errorf("minutes cannot be negative"))
	}
	if s.Weather != "" {
		if _, err := ParseWeatherType(string(s.Weather)); err != nil {
			el.Add(err)
		}
	}
	if s.Intensity != "" {
		if _, err := ParseIntensity(string(s.Intensity)); err != nil {
			el.Add(err)
		}
	}
	return el.Err()
}

// Atmosphere is the single authoritative weather and time state for the
// whole world. WorldState owns exactly one; every reader goes through its
// accessors and the only writer is Advance (plus the admin override).
// Nothing else may hold a second weather representation.
type Atmosphere struct {
	cal Calendar
	rng *rand.Rand

	// epoch anchors wall-clock time: at epoch the game clock read baseMinutes.
	epoch       time.Time
	baseMinutes int64

	tick      int64 // game minutes at the last Advance
	weather   Weather
	locked    bool  // admin hold: no autonomous transitions
	nextShift int64 // tick of the next autonomous weather transition
}

// AtmosphereOpt configures a new Atmosphere.
type AtmosphereOpt func(*Atmosphere)

// WithSeed makes the autonomous weather transitions deterministic.
func WithSeed(seed int64) AtmosphereOpt {
	return func(a *Atmosphere) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

// NewAtmosphere creates an atmosphere at day one, clear skies.
func NewAtmosphere(cal Calendar, now time.Time, opts ...AtmosphereOpt) *Atmosphere {
	a := &Atmosphere{
		cal:     cal,
		rng:     rand.New(rand.NewSource(now.UnixNano())),
		epoch:   now,
		weather: Weather{Type: WeatherClear, Intensity: IntensityNone},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.scheduleShift()
	return a
}

// NewAtmosphereFromState restores an atmosphere from a snapshot. A nil or
// invalid snapshot falls back to defaults rather than failing: a missing
// save file is an expected condition on first boot.
func NewAtmosphereFromState(cal Calendar, now time.Time, state *AtmosphereState, opts ...AtmosphereOpt) *Atmosphere {
	a := NewAtmosphere(cal, now, opts...)
	if state == nil || state.Validate() != nil {
		return a
	}
	a.baseMinutes = state.Minutes
	a.tick = state.Minutes
	a.locked = state.Locked
	if state.Weather != "" {
		a.weather.Type = state.Weather
	}
	if state.Intensity != "" {
		a.weather.Intensity = state.Intensity
	}
	if a.weather.Type != WeatherClear && a.weather.Intensity == IntensityNone {
		a.weather.Intensity = IntensityLight
	}
	a.scheduleShift()
	return a
}

// State captures a serializable snapshot.
func (a *Atmosphere) State() *AtmosphereState {
	return &AtmosphereState{
		Minutes:   a.tick,
		Weather:   a.weather.Type,
		Intensity: a.weather.Intensity,
		Locked:    a.locked,
	}
}

// Advance moves the atmosphere to the game minute implied by now. It is the
// single writer path: repeat calls within the same game minute are no-ops,
// so any number of command paths may trigger it.
func (a *Atmosphere) Advance(now time.Time) int64 {
	tick := a.baseMinutes + int64(now.Sub(a.epoch).Seconds()/a.cal.SecondsPerGameMinute)
	if tick <= a.tick {
		return a.tick
	}
	a.tick = tick

	if !a.locked && tick >= a.nextShift {
		a.weather = a.rollWeather()
		a.scheduleShift()
	}
	return a.tick
}

// rollWeather picks the next autonomous weather, weighted by season.
func (a *Atmosphere) rollWeather() Weather {
	type entry struct {
		t WeatherType
		w int
	}
	var table []entry
	switch a.Season() {
	case SeasonWinter:
		table = []entry{
			{WeatherClear, 3}, {WeatherSnow, 3}, {WeatherSleet, 2},
			{WeatherFog, 1}, {WeatherWindy, 2}, {WeatherStorm, 1},
		}
	case SeasonSummer:
		table = []entry{
			{WeatherClear, 4}, {WeatherRain, 2}, {WeatherStorm, 2},
			{WeatherHeatwave, 2}, {WeatherWindy, 1}, {WeatherFog, 1},
		}
	default:
		table = []entry{
			{WeatherClear, 4}, {WeatherRain, 3}, {WeatherFog, 2},
			{WeatherWindy, 2}, {WeatherStorm, 1},
		}
	}

	total := 0
	for _, e := range table {
		total += e.w
	}
	roll := a.rng.Intn(total)
	wt := table[len(table)-1].t
	for _, e := range table {
		if roll < e.w {
			wt = e.t
			break
		}
		roll -= e.w
	}

	if wt == WeatherClear {
		return Weather{Type: WeatherClear, Intensity: IntensityNone}
	}
	intensities := []Intensity{IntensityLight, IntensityModerate, IntensityHeavy}
	return Weather{Type: wt, Intensity: intensities[a.rng.Intn(len(intensities))]}
}

// scheduleShift queues the next autonomous transition one to three game
// hours out.
func (a *Atmosphere) scheduleShift() {
	a.nextShift = a.tick + 60 + int64(a.rng.Intn(120))
}

// SetWeather is the administrative override. It takes effect immediately:
// the very next render reads the new value. When lock is set, autonomous
// transitions are suspended until Unlock.
func (a *Atmosphere) SetWeather(wt WeatherType, in Intensity, lock bool) {
	if wt == WeatherClear {
		in = IntensityNone
	} else if in == IntensityNone || in == "" {
		in = IntensityModerate
	}
	a.weather = Weather{Type: wt, Intensity: in}
	a.locked = a.locked || lock
	// The override holds until the next scheduled transition.
	a.scheduleShift()
}

// Lock suspends autonomous weather transitions.
func (a *Atmosphere) Lock() { a.locked = true }

// Unlock resumes autonomous weather transitions.
func (a *Atmosphere) Unlock() { a.locked = false }

// Locked reports whether autonomous transitions are suspended.
func (a *Atmosphere) Locked() bool { return a.locked }

// Tick returns the current game minute.
func (a *Atmosphere) Tick() int64 { return a.tick }

// Weather returns the authoritative weather.
func (a *Atmosphere) Weather() Weather { return a.weather }

// DayOfYear returns the one-based day within the current year.
func (a *Atmosphere) DayOfYear() int {
	yearDays := int64(a.cal.DaysPerSeason * len(seasonOrder))
	return int((a.tick/minutesPerDay)%yearDays) + 1
}

// Year returns the one-based year count.
func (a *Atmosphere) Year() int {
	yearDays := int64(a.cal.DaysPerSeason * len(seasonOrder))
	return int(a.tick/minutesPerDay/yearDays) + 1
}

// Season returns the current season.
func (a *Atmosphere) Season() Season {
	return seasonOrder[(a.DayOfYear()-1)/a.cal.DaysPerSeason]
}

// MinuteOfDay returns the game minute within the current day.
func (a *Atmosphere) MinuteOfDay() int {
	return int(a.tick % minutesPerDay)
}

// Clock formats the game time as HH:MM.
func (a *Atmosphere) Clock() string {
	m := a.MinuteOfDay()
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// TimeOfDay derives the day period from the season's sunrise and sunset,
// with half-hour dawn and dusk windows on either side.
func (a *Atmosphere) TimeOfDay() TimeOfDay {
	m := a.MinuteOfDay()
	sunrise, sunset := sunTimes(a.Season())
	switch {
	case m >= sunrise-twilightHalf && m <= sunrise+twilightHalf:
		return TimeDawn
	case m >= sunset-twilightHalf && m <= sunset+twilightHalf:
		return TimeDusk
	case m > sunrise+twilightHalf && m < sunset-twilightHalf:
		return TimeDay
	default:
		return TimeNight
	}
}
