package config

import "os"

type AppConfig struct {
	DebugMode       bool
	RedisConfig     *RedisConfig
	PostgresConfig  *PostgresConfig
	ExecutorConfig  *ExecutorConfig
	ExecutionConfig *ExecutionConfig
	JwtConfig       *JwtConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:       os.Getenv("DEBUG_MODE") == "true",
		RedisConfig:     NewRedisConfig(),
		PostgresConfig:  NewPostgresConfig(),
		ExecutorConfig:  NewExecutorConfig(),
		ExecutionConfig: NewExecutionConfig(),
		JwtConfig:       NewJwtConfig(),
	}
}
