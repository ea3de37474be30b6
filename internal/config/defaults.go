package config

const (
	defaultConfigPath         = "~/.config/hbcheckup/config.toml"
	defaultHandbrakePath      = "~/Library/Application Support/HandBrake/HandBrake-activitylog.txt"
	defaultServerPort         = 9595
	defaultEstimator          = EstimatorChapter
	defaultStateDir           = "~/.local/share/hbcheckup"
	defaultPeerTimeoutSeconds = 5
	defaultPeerRetries        = 1
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Estimator strategy names accepted by the estimator key.
const (
	EstimatorChapter = "chapter"
	EstimatorFrame   = "frame"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		HandbrakePath: defaultHandbrakePath,
		ServerPort:    defaultServerPort,
		Estimator:     defaultEstimator,
		StateDir:      defaultStateDir,
		Peer: Peer{
			TimeoutSeconds: defaultPeerTimeoutSeconds,
			Retries:        defaultPeerRetries,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
