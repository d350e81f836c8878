package preferences

import (
	"time"

	"boxtime/internal/core/model"
	"boxtime/internal/core/timekeeper"
)

// Settings defines editable user preferences.
type Settings struct {
	TickInterval time.Duration
	AutoContinue bool
	SoundEnabled bool
	Premium      bool

	QuickStart model.Exercise
}

// DefaultSettings returns default settings for BoxTime.
func DefaultSettings() Settings {
	return Settings{
		TickInterval: time.Second,
		AutoContinue: true,
		SoundEnabled: true,
		Premium:      false,
		QuickStart: model.Exercise{
			Name:              "Quick start",
			Rounds:            3,
			WorkPhaseDuration: 30,
			RestPhaseDuration: 10,
		},
	}
}

// TimeKeeperConfig converts settings to a timekeeper.Config.
func (settings Settings) TimeKeeperConfig() timekeeper.Config {
	return timekeeper.Config{
		TickInterval: settings.TickInterval,
		AutoContinue: settings.AutoContinue,
	}
}
