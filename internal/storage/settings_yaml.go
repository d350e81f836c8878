package storage

import (
	"time"

	"boxtime/internal/core/model"
	"boxtime/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	TickMilliseconds int             `yaml:"tick_milliseconds"`
	AutoContinue     *bool           `yaml:"auto_continue"`
	SoundEnabled     *bool           `yaml:"sound_enabled"`
	Premium          bool            `yaml:"premium"`
	QuickStart       *model.Exercise `yaml:"quick_start,omitempty"`
}

// LoadSettings reads user preferences from YAML.
// If the settings file does not exist, default settings are returned.
func (store *Store) LoadSettings() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	var fileData yamlSettings
	found, err := store.readYAML(settingsFileName, &fileData)
	if err != nil || !found {
		return settings, err
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func (store *Store) SaveSettings(settings preferences.Settings) error {
	quickStart := settings.QuickStart
	fileData := yamlSettings{
		TickMilliseconds: int(settings.TickInterval / time.Millisecond),
		AutoContinue:     &settings.AutoContinue,
		SoundEnabled:     &settings.SoundEnabled,
		Premium:          settings.Premium,
		QuickStart:       &quickStart,
	}
	return store.writeYAML(settingsFileName, fileData)
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.TickMilliseconds > 0 {
		settings.TickInterval = time.Duration(fileData.TickMilliseconds) * time.Millisecond
	}
	if fileData.AutoContinue != nil {
		settings.AutoContinue = *fileData.AutoContinue
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.QuickStart != nil && fileData.QuickStart.Validate() == nil && fileData.QuickStart.Rounds > 0 {
		settings.QuickStart = *fileData.QuickStart
	}

	settings.Premium = fileData.Premium
}
