package config

import "flag"

// Flags are the command-line overrides.
type Flags struct {
	Config string
	Debug  bool
	Width  int
	Height int
	Log    string
	Filter string
	Files  []string // Positional arguments: assets to open at startup
}

// ParseFlags parses args (without the program name).
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("texcomp", flag.ContinueOnError)
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.StringVar(&f.Log, "log", "", "Log file path")
	fs.StringVar(&f.Filter, "filter", "", "Image filter: nearest or linear")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	f.Files = fs.Args()
	return f, nil
}

func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
	if f.Log != "" {
		cfg.Logging.File = f.Log
	}
	if f.Filter != "" {
		cfg.Viewer.Filter = f.Filter
	}
}
