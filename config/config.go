package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Room     RoomConfig     `mapstructure:"room"`
	Database DatabaseConfig `mapstructure:"database"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
}

type RoomConfig struct {
	CodeLength        int `mapstructure:"code_length"`
	TicTacToeCapacity int `mapstructure:"tictactoe_capacity"`
	DrawGuessCapacity int `mapstructure:"drawguess_capacity"`
}

type DatabaseConfig struct {
	// Driver selects the match-history backend: "postgres" (database/sql),
	// "gorm" or empty to disable recording entirely.
	Driver   string         `mapstructure:"driver"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.metrics_address", ":9090")
	viper.SetDefault("server.rpc_address", ":8081")
	viper.SetDefault("room.code_length", 4)
	viper.SetDefault("room.tictactoe_capacity", 2)
	viper.SetDefault("room.drawguess_capacity", 10)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		// A missing config file is fine, the defaults cover everything
		// except the database, which stays disabled.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}
