package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cuemby/opcua-core/pkg/log"
	"github.com/cuemby/opcua-core/pkg/security"
	"github.com/cuemby/opcua-core/pkg/server"
)

// fileConfig is the on-disk shape cmd/opcuaserver reads with yaml.v3. None
// of this parsing lives in pkg/server: server.Config is a plain struct the
// embedder builds however it likes, and yaml is this demo binary's choice,
// not the core's.
type fileConfig struct {
	ApplicationURI  string `yaml:"applicationUri"`
	ApplicationName string `yaml:"applicationName"`
	ListenAddr      string `yaml:"listenAddr"`
	DiscoveryURL    string `yaml:"discoveryUrl"`
	NThreads        int    `yaml:"workerThreads"`
	WorkerQueueSize int    `yaml:"workerQueueSize"`

	LogLevel  string `yaml:"logLevel"`
	LogJSON   bool   `yaml:"logJson"`
	Login struct {
		EnableAnonymous        bool     `yaml:"enableAnonymous"`
		EnableUsernamePassword bool     `yaml:"enableUsernamePassword"`
		Usernames              []string `yaml:"usernames"`
		Passwords              []string `yaml:"passwords"`
	} `yaml:"login"`
}

func defaultFileConfig() fileConfig {
	var cfg fileConfig
	cfg.ApplicationURI = "urn:opcua-core:demo-server"
	cfg.ApplicationName = "opcua-core demo server"
	cfg.ListenAddr = "127.0.0.1:4840"
	cfg.DiscoveryURL = "opc.tcp://127.0.0.1:4840"
	cfg.NThreads = 4
	cfg.WorkerQueueSize = 256
	cfg.LogLevel = "info"
	cfg.Login.EnableAnonymous = true
	return cfg
}

func loadFileConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c fileConfig) serverConfig() server.Config {
	return server.Config{
		ApplicationURI:  c.ApplicationURI,
		ApplicationName: c.ApplicationName,
		NThreads:        c.NThreads,
		WorkerQueueSize: c.WorkerQueueSize,
	}
}

func (c fileConfig) securityConfig() security.Config {
	return security.Config{
		LoginEnableAnonymous:        c.Login.EnableAnonymous,
		LoginEnableUsernamePassword: c.Login.EnableUsernamePassword,
		LoginUsernames:              c.Login.Usernames,
		LoginPasswords:              c.Login.Passwords,
	}
}

func (c fileConfig) logConfig() log.Config {
	level := log.InfoLevel
	switch c.LogLevel {
	case "debug":
		level = log.DebugLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	}
	return log.Config{Level: level, JSONOutput: c.LogJSON}
}
