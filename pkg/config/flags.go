package config

// RunFlagsNameMapping maps the config fields to the cli flag names
type RunFlagsNameMapping struct {
	URL      string
	Timeout  string
	Watch    string
	Interval string
	Count    string
	JSON     string
	Quiet    string

	ApiAddress string
}
