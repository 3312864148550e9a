package config

import (
	"github.com/medhatjachour/employee-management/library/pg"
	"github.com/medhatjachour/employee-management/library/yamlenv"
)

type Config struct {
	Postgres pg.PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig       `yaml:"kafka"`
	UserAPI  ApiConfig         `yaml:"userAPI"`
}

type KafkaConfig struct {
	Enabled   *yamlenv.Env[bool]   `yaml:"enabled"`
	Bootstrap *yamlenv.Env[string] `yaml:"bootstrap"`
	Topics    struct {
		Employees *yamlenv.Env[string] `yaml:"employees"`
		Managers  *yamlenv.Env[string] `yaml:"managers"`
	} `yaml:"topics"`
}

type ApiConfig struct {
	Port *yamlenv.Env[int] `yaml:"port"`
}
