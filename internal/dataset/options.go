package dataset

import (
	"finviz/internal/config"
)

// Options controls how a dataset file is read
type Options struct {
	// Delimiter separates CSV fields; zero detects it from the header line
	Delimiter rune
	// Sheet names the worksheet of an .xlsx file; empty selects the first one
	Sheet string
	// NormalizeBinary maps factor cells "1" and "0" to "Yes" and "No"
	NormalizeBinary bool
}

// DefaultOptions detects the delimiter and keeps factor cells as they are
func DefaultOptions() Options {
	return Options{}
}

// OptionsFrom builds loader options from the input configuration
func OptionsFrom(cfg config.InputConfig) Options {
	opts := Options{
		Sheet:           cfg.Sheet,
		NormalizeBinary: cfg.NormalizeBinary,
	}
	switch cfg.Delimiter {
	case "comma":
		opts.Delimiter = ','
	case "semicolon":
		opts.Delimiter = ';'
	case "tab":
		opts.Delimiter = '\t'
	}
	return opts
}
