package config

const (
	defaultDataDir        = "~/.local/share/stockboard"
	defaultLogDir         = "~/.local/share/stockboard/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultStaleAfterDays = 30
	defaultActor          = "Admin"
	defaultNotifyTimeout  = 10
)

// defaultStages is the deal pipeline order used when no stages are configured.
var defaultStages = []string{
	"Universe",
	"Prospects",
	"Outreach",
	"Discovery",
	"Live Deal",
	"Execute",
	"Tracker",
	"Ocean",
}

const (
	defaultArchiveStage      = "Ocean"
	defaultRestorationTarget = "Prospects"
)

var defaultActors = []string{
	"Analyst A",
	"Analyst B",
	"Portfolio Manager",
	"Compliance Officer",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Board: Board{
			Stages:            append([]string(nil), defaultStages...),
			ArchiveStage:      defaultArchiveStage,
			RestorationTarget: defaultRestorationTarget,
			StaleAfterDays:    defaultStaleAfterDays,
			Actors:            append([]string(nil), defaultActors...),
			DefaultActor:      defaultActor,
		},
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Moves:          true,
			Creations:      true,
			Errors:         true,
		},
	}
}
