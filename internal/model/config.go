package model

import "time"

type Config struct {
	DataDir    string          `yaml:"data_dir" validate:"required"`
	StorageKey string          `yaml:"storage_key" validate:"required,excludesall=/\\"`
	Editor     string          `yaml:"editor"`
	Dictation  DictationConfig `yaml:"dictation"`
	Notify     NotifyConfig    `yaml:"notify"`
	Log        LogConfig       `yaml:"log"`
}

type DictationConfig struct {
	Command         string   `yaml:"command"`
	Args            []string `yaml:"args"`
	Language        string   `yaml:"language" validate:"required"`
	Continuous      bool     `yaml:"continuous"`
	InterimResults  bool     `yaml:"interim_results"`
	MaxAlternatives int      `yaml:"max_alternatives" validate:"min=1,max=10"`
	StopOnError     bool     `yaml:"stop_on_error"`
}

type NotifyConfig struct {
	SuccessDuration time.Duration `yaml:"success_duration" validate:"min=0"`
	WarningDuration time.Duration `yaml:"warning_duration" validate:"min=0"`
}

type LogConfig struct {
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" validate:"oneof=pretty text json"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size" validate:"min=0,max=1024"`
	MaxBackups int    `yaml:"max_backups" validate:"min=0,max=100"`
	MaxAgeDays int    `yaml:"max_age" validate:"min=0,max=365"`
}

func DefaultConfig() Config {
	return Config{
		DataDir:    "~/.config/expert-notes/data",
		StorageKey: "notes",
		Editor:     "vim",
		Dictation: DictationConfig{
			Language:        "pt-BR",
			Continuous:      true,
			InterimResults:  true,
			MaxAlternatives: 1,
		},
		Notify: NotifyConfig{
			SuccessDuration: 4 * time.Second,
			WarningDuration: 3500 * time.Millisecond,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "pretty",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}
