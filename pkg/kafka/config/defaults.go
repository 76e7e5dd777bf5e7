package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	DefaultProducerMaxAttempts    = 3
	DefaultProducerBatchTimeout   = 10 * time.Millisecond
	DefaultProducerWriteTimeout   = 10 * time.Second
	DefaultProducerRequireAcks    = -1 // all in-sync replicas
	DefaultProducerCompression    = "snappy"
	DefaultProducerAsync          = false
	DefaultAllowAutoTopicCreation = false
	DefaultDLQTopic               = ""
)
