package config

// Overrides holds values supplied on the command line. Zero values leave
// the corresponding setting untouched.
type Overrides struct {
	Width     int
	Height    int
	Workers   int
	Scheduler string
	Gamma     float64
	Out       string

	LogLevel string
	LogFile  string
}

func (o Overrides) apply(cfg *Config) {
	if o.Width > 0 {
		cfg.Render.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Render.Height = o.Height
	}
	if o.Workers > 0 {
		cfg.Render.Workers = o.Workers
	}
	if o.Scheduler != "" {
		cfg.Render.Scheduler = o.Scheduler
	}
	if o.Gamma > 0 {
		cfg.Render.Gamma = o.Gamma
	}
	if o.Out != "" {
		cfg.Render.Out = o.Out
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Logging.File = o.LogFile
	}
}
