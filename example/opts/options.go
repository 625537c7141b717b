package opts

//
// This file contains the configuration structs from which the example
// derives its entire command-line surface.
//

// Level is the log verbosity, declared as a closed set of named members.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

var levelNames = []string{"info", "warn", "error"}

// EnumNames returns the member names in declaration order.
func (Level) EnumNames() []string { return levelNames }

// EnumByName maps a name back to its member.
func (Level) EnumByName(name string) (any, bool) {
	for i, known := range levelNames {
		if known == name {
			return Level(i), true
		}
	}

	return nil, false
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}

	return "unknown"
}

// TLSConfig is a nested record: its arguments are derived with a "tls-"
// prefix on the parent command line.
type TLSConfig struct {
	Cert string `default:"server.crt" desc:"path to the server certificate"`
	Key  string `default:"server.key" desc:"path to the private key"`
}

// ServerConfig declares every argument of the example server. Field names,
// types, `default` tags and the prototype returned by DefaultServerConfig
// are the single source of truth for the CLI.
type ServerConfig struct {
	Host  string   `desc:"bind address"                     validate:"required"`
	Port  int      `default:"8080"                          validate:"gte=1,lte=65535"`
	Level Level    `default:"info" desc:"log verbosity"`
	Tags  []string `desc:"labels attached to this instance"`
	Debug bool     `default:"false" desc:"enable debug output"`
	TLS   TLSConfig
}

// DefaultServerConfig returns the prototype whose non-zero fields become
// declared defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host: "localhost",
		Tags: []string{},
	}
}
