package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Profile        string   `json:"profile" yaml:"profile" toml:"profile"`
	Region         string   `json:"region" yaml:"region" toml:"region"`
	Endpoint       string   `json:"endpoint" yaml:"endpoint" toml:"endpoint"`
	ReportName     string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType     []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir            string   `json:"dir" yaml:"dir" toml:"dir"`
	Concurrency    int      `json:"concurrency" yaml:"concurrency" toml:"concurrency"`
	Strict         bool     `json:"strict" yaml:"strict" toml:"strict"`
	LogLevel       string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	MetricWindow   int      `json:"metric_window_days" yaml:"metric_window_days" toml:"metric_window_days"`
	StorageClasses []string `json:"storage_classes" yaml:"storage_classes" toml:"storage_classes"`
}
