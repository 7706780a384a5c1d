package cmd

// Config carries the environment configuration for the fulfillment service.
// Money amounts are in paise.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost             string
	KafkaOrderEventsTopic string

	RedisAddr     string
	RedisPassword string

	DeliveryFee         int64
	MinimumOrder        int64
	AutoAdvanceOnAssign bool
}
