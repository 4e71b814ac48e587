package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile     string
	Profile        string
	Region         string
	Endpoint       string
	ReportName     string
	ReportType     []string
	Dir            string
	Concurrency    int
	Strict         bool
	LogLevel       string
	MetricWindow   int
	StorageClasses []string
}

// SessionConfig is the explicit AWS session context handed to the adapters.
// Nothing in the audit reads process-wide AWS state besides what LoadDefaultConfig resolves from it.
type SessionConfig struct {
	Profile  string
	Region   string
	Endpoint string
}

// AuditOptions são as opções que controlam a execução de uma auditoria.
type AuditOptions struct {
	Concurrency    int
	Strict         bool
	MetricWindow   int
	StorageClasses []string
}

// Session returns the AWS session part of the arguments.
func (a *CLIArgs) Session() SessionConfig {
	return SessionConfig{
		Profile:  a.Profile,
		Region:   a.Region,
		Endpoint: a.Endpoint,
	}
}

// Options returns the audit execution part of the arguments.
func (a *CLIArgs) Options() AuditOptions {
	return AuditOptions{
		Concurrency:    a.Concurrency,
		Strict:         a.Strict,
		MetricWindow:   a.MetricWindow,
		StorageClasses: a.StorageClasses,
	}
}
