package config

type MetricsConfig struct {
	ListenAddr string `yaml:"addr"`
}

func (m *MetricsConfig) Addr() string {
	return m.ListenAddr
}
