package config

import "time"

type ExecutorConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

func NewExecutorConfig() *ExecutorConfig {
	return &ExecutorConfig{
		BaseURL:        getEnv("EXECUTOR_URL", "http://localhost:8090"),
		RequestTimeout: time.Duration(getIntEnv("EXECUTOR_TIMEOUT_SEC", 30)) * time.Second,
	}
}
