package config

type MemcachedConfig struct {
	NodeHosts []string `yaml:"hosts"`
}

func (s *MemcachedConfig) Hosts() []string {
	return s.NodeHosts
}

// Enabled is false when no hosts are listed, reports are then never cached.
func (s *MemcachedConfig) Enabled() bool {
	return len(s.NodeHosts) > 0
}
