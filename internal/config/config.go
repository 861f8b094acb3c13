package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the directory passed to Load.
const FileName = "steamgauges.cfg.json"

// MemoryConfig holds in-memory/msgpack storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds settings for the in-memory SQLite backend that is
// periodically dumped to disk.
type SQLiteConfig struct {
	Path         string        `json:"path" mapstructure:"path"`
	DumpInterval time.Duration `json:"dumpInterval" mapstructure:"dumpInterval"`
}

// DBConfig holds Postgres connection settings.
type DBConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// DSN renders the connection string for the Postgres driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.Username, c.Password, c.Database)
}

// StorageConfig selects and configures the flight recorder backend.
type StorageConfig struct {
	Type   string // memory, sqlite or postgres
	Memory MemoryConfig
	SQLite SQLiteConfig
	DB     DBConfig
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// InfluxConfig holds InfluxDB telemetry settings.
type InfluxConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Protocol string
	Token    string
	Org      string
	Bucket   string
}

// URL is the server address built from protocol, host and port.
func (c InfluxConfig) URL() string {
	return fmt.Sprintf("%s://%s:%s", c.Protocol, c.Host, c.Port)
}

// GraylogConfig holds the GELF sink settings.
type GraylogConfig struct {
	Enabled bool
	Address string
}

// MQTTConfig holds the alert publisher settings.
type MQTTConfig struct {
	Enabled  bool
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
}

// UploadConfig points finished flights at a flight log server.
type UploadConfig struct {
	Enabled   bool
	ServerURL string
	APIKey    string
}

// RecorderConfig sizes the frame queue and sets how often it is drained.
type RecorderConfig struct {
	QueueSize     int
	FlushInterval time.Duration
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./steamgauges_logs")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./flights")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.path", "./flights/steamgauges.db")
	viper.SetDefault("storage.sqlite.dumpInterval", "3m")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "steamgauges")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "steamgauges")
	viper.SetDefault("influx.bucket", "gauges")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("mqtt.clientId", "steamgauges")
	viper.SetDefault("mqtt.topic", "steamgauges/alerts")
	viper.SetDefault("mqtt.qos", 1)

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "steamgauges")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("upload.enabled", false)
	viper.SetDefault("upload.serverUrl", "http://localhost:5000")
	viper.SetDefault("upload.apiKey", "")

	viper.SetDefault("recorder.queueSize", 10000)
	viper.SetDefault("recorder.flushInterval", "1s")

	viper.SetDefault("bodies.catalog", "")

	viper.SetDefault("monitor.statusFile", "./steamgauges_status.json")
	viper.SetDefault("monitor.interval", "1s")

	setGaugeDefaults()
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// LoadDefaults installs the defaults without reading a file, for hosts that
// have not shipped one yet.
func LoadDefaults() {
	setDefaults()
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// Set overrides a config value for the rest of the session.
func Set(key string, value any) {
	viper.Set(key, value)
}

// GetStorageConfig returns the recorder backend settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path:         viper.GetString("storage.sqlite.path"),
			DumpInterval: viper.GetDuration("storage.sqlite.dumpInterval"),
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
		},
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetInfluxConfig returns the InfluxDB settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:  viper.GetBool("influx.enabled"),
		Host:     viper.GetString("influx.host"),
		Port:     viper.GetString("influx.port"),
		Protocol: viper.GetString("influx.protocol"),
		Token:    viper.GetString("influx.token"),
		Org:      viper.GetString("influx.org"),
		Bucket:   viper.GetString("influx.bucket"),
	}
}

// GetGraylogConfig returns the GELF sink settings.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}

// GetMQTTConfig returns the alert publisher settings. QoS is clamped to the
// three levels MQTT defines.
func GetMQTTConfig() MQTTConfig {
	qos := viper.GetInt("mqtt.qos")
	if qos < 0 {
		qos = 0
	} else if qos > 2 {
		qos = 2
	}
	return MQTTConfig{
		Enabled:  viper.GetBool("mqtt.enabled"),
		Broker:   viper.GetString("mqtt.broker"),
		ClientID: viper.GetString("mqtt.clientId"),
		Topic:    viper.GetString("mqtt.topic"),
		QoS:      byte(qos),
	}
}

// GetUploadConfig returns the flight upload settings. Upload stays off
// without a server URL.
func GetUploadConfig() UploadConfig {
	url := viper.GetString("upload.serverUrl")
	return UploadConfig{
		Enabled:   viper.GetBool("upload.enabled") && url != "",
		ServerURL: url,
		APIKey:    viper.GetString("upload.apiKey"),
	}
}

// GetRecorderConfig returns the queue settings. A non-positive queue size
// falls back to the default.
func GetRecorderConfig() RecorderConfig {
	size := viper.GetInt("recorder.queueSize")
	if size <= 0 {
		size = 10000
	}
	flush := viper.GetDuration("recorder.flushInterval")
	if flush <= 0 {
		flush = time.Second
	}
	return RecorderConfig{QueueSize: size, FlushInterval: flush}
}
