package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixAerodrome CachePrefix = "AD_"
)

// RedisKeyPrefix namespaces every key this service writes to a shared Redis.
const RedisKeyPrefix = "flightops:"
