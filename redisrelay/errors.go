package redisrelay

import "errors"

var (
	// ErrNilClient is returned by New when no Redis client is provided.
	ErrNilClient = errors.New("redis client is nil")

	// ErrNilBus is returned by New when no local bus is provided.
	ErrNilBus = errors.New("broadcast bus is nil")

	// ErrEmptyChannel is returned when the Redis channel name is empty.
	ErrEmptyChannel = errors.New("empty redis channel name")

	// ErrFailedToParseConnString is returned when the Redis connection URL
	// cannot be parsed.
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")

	// ErrRedisNotReady is returned when Redis does not answer a ping within
	// the connect timeout.
	ErrRedisNotReady = errors.New("redis did not become ready within the given time period")

	// ErrPublishFailed is returned by Broadcast when the value was delivered
	// locally but could not be published to Redis.
	ErrPublishFailed = errors.New("failed to publish to redis")
)
