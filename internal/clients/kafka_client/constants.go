package kafka_client

import "time"

const (
	KAFKA_TOPIC_RAW_CONTENT      = "raw-content"      // unprocessed posts from the collectors
	KAFKA_TOPIC_ANALYZED_CONTENT = "analyzed-content" // fully annotated posts ready for storage
)

const (
	MAX_RETRIES = 5
	RETRY_DELAY = 2 * time.Second
)
