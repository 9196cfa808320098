package config

const defaultServiceName = "expense-bot"

type TracingConfig struct {
	On      bool   `yaml:"enabled"`
	Service string `yaml:"service-name"`
}

func (t *TracingConfig) setDefaults() {
	if t.Service == "" {
		t.Service = defaultServiceName
	}
}

func (t *TracingConfig) Enabled() bool {
	return t.On
}

func (t *TracingConfig) ServiceName() string {
	return t.Service
}
