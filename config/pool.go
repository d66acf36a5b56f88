package config

type Pool struct {
	URL    string `yaml:"url"`
	Wallet string `yaml:"wallet"`
	Pass   string `yaml:"pass"`
	Agent  string `yaml:"agent,omitempty"`
}
