package config

// Config holds the settings of one knolpack run.
type Config struct {
	Output  string     `koanf:"output" validate:"required"`
	Repos   string     `koanf:"repos" validate:"required"`
	Sources []string   `koanf:"source" validate:"min=1,dive,required"`
	Media   []string   `koanf:"media" validate:"dive,required"`
	Tags    []string   `koanf:"tag" validate:"dive,required"`
	Deck    DeckConfig `koanf:"deck"`
	Log     LogConfig  `koanf:"log"`
}

// DeckConfig describes the deck the knols are written to.
type DeckConfig struct {
	ID          int64  `koanf:"id" validate:"gt=0"`
	Name        string `koanf:"name" validate:"required"`
	Description string `koanf:"description"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}
