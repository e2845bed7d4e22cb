package game

// skySentences is the complete ambient description matrix. Every weather
// type has an entry for every time of day; there is deliberately no default
// branch, so an active storm at night reads as a storm, never as a generic
// dark sky.
var skySentences = map[WeatherType]map[TimeOfDay]string{
	WeatherClear: {
		TimeDawn:  "The first light of dawn spreads across a clear sky.",
		TimeDay:   "The sky is clear and bright overhead.",
		TimeDusk:  "The clear sky fades through orange and violet as the sun sets.",
		TimeNight: "Stars glitter across a cloudless night sky.",
	},
	WeatherRain: {
		TimeDawn:  "Rain falls through the grey light of dawn.",
		TimeDay:   "Rain falls steadily from an overcast sky.",
		TimeDusk:  "Rain blurs the last light of the setting sun.",
		TimeNight: "Rain hisses down through the darkness.",
	},
	WeatherSnow: {
		TimeDawn:  "Snow drifts down through the pale dawn light.",
		TimeDay:   "Snowflakes swirl beneath a white sky.",
		TimeDusk:  "Snow settles softly as the daylight dies.",
		TimeNight: "Snow falls silently through the night.",
	},
	WeatherStorm: {
		TimeDawn:  "A storm rages on, lightning pale against the dawn.",
		TimeDay:   "Thunder rolls as a storm lashes the land.",
		TimeDusk:  "The storm swallows the sunset in churning cloud.",
		TimeNight: "Lightning splits the night as the storm rages.",
	},
	WeatherFog: {
		TimeDawn:  "Dawn struggles to pierce a thick morning fog.",
		TimeDay:   "A heavy fog hangs over everything, muffling sound.",
		TimeDusk:  "Fog thickens as the light drains from the sky.",
		TimeNight: "Fog smothers the night, swallowing every light.",
	},
	WeatherWindy: {
		TimeDawn:  "A brisk wind ushers in the dawn.",
		TimeDay:   "A strong wind gusts across the open sky.",
		TimeDusk:  "The wind keens as the sun goes down.",
		TimeNight: "The night wind moans and tugs at everything loose.",
	},
	WeatherSleet: {
		TimeDawn:  "Sleet rattles down through the grey dawn.",
		TimeDay:   "Stinging sleet falls from a leaden sky.",
		TimeDusk:  "Sleet slants through the failing evening light.",
		TimeNight: "Sleet clatters unseen out of the black sky.",
	},
	WeatherHeatwave: {
		TimeDawn:  "The air is already hot as dawn breaks.",
		TimeDay:   "Heat shimmers off every surface under a punishing sun.",
		TimeDusk:  "The sun sets without relieving the oppressive heat.",
		TimeNight: "The night air stays thick and stifling with heat.",
	},
}

// indoorSentences describe ambient light for rooms sheltered from the sky.
var indoorSentences = map[TimeOfDay]string{
	TimeDawn:  "Early morning light filters in from outside.",
	TimeDay:   "Daylight filters in from outside.",
	TimeDusk:  "The light from outside is fading.",
	TimeNight: "It is dark outside.",
}

// AmbientSentence renders the atmospheric line for a room. Indoor rooms
// never show sky weather; the decision comes from the room's own outdoor
// flag, not from its name or prose.
func (a *Atmosphere) AmbientSentence(outdoor bool) string {
	tod := a.TimeOfDay()
	if !outdoor {
		return indoorSentences[tod]
	}

	s := skySentences[a.weather.Type][tod]
	if a.weather.Intensity == IntensityHeavy {
		switch a.weather.Type {
		case WeatherRain, WeatherSnow, WeatherSleet:
			s += " It is coming down hard."
		case WeatherStorm:
			s += " The gusts are strong enough to stagger you."
		}
	}
	return s
}
