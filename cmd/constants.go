package cmd

// DefaultProjectConfigFilename describes the default config filename for a given project folder.
const DefaultProjectConfigFilename = "contractkit.json"

// DefaultOutputFormat describes the descriptor encoding used if one is not provided.
const DefaultOutputFormat = "json"

// logFilePrefix is the name prefix of structured log files written to the configured log directory.
const logFilePrefix = "contractkit-"
