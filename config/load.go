package config

import (
	"errors"
	"flag"
	"fmt"
	"gopkg.in/yaml.v2"
	"io/ioutil"
	"os"
	"path"

	"github.com/fernandosanchezjr/gocpuminer/hashing"
	log "github.com/sirupsen/logrus"
)

var configPath string

func init() {
	configFolder := getOrCreateConfigFolder()
	defaultConfigPath := path.Join(configFolder, "config.yaml")
	flag.StringVar(&configPath, "config", defaultConfigPath, "specify config file")
}

func getOrCreateConfigFolder() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Println("could not find home folder")
		return ""
	}
	configFolder := path.Join(home, ".gocpuminer")
	if err := os.MkdirAll(configFolder, 0700); err != nil {
		log.Println("Could not create", configFolder)
		return ""
	}
	return configFolder
}

// Path is the config file selected with -config.
func Path() string {
	return configPath
}

func LoadConfig() (*Config, error) {
	return LoadConfigFile(configPath)
}

func LoadConfigFile(filePath string) (*Config, error) {
	c := &Config{}
	var data []byte
	var err error
	log.WithField("path", filePath).Debug("Loading config")
	if data, err = ioutil.ReadFile(filePath); err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if c.Pool.URL == "" {
		return nil, errors.New("no pool url in config")
	}
	c.setDefaults()
	if !hashing.Supported(c.Algorithm) {
		return nil, fmt.Errorf("unsupported algo %q, expected one of %v", c.Algorithm, hashing.Algorithms())
	}
	return c, nil
}
