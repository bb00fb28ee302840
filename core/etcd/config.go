package etcd

// Config holds configuration for the key-value store connection.
type Config struct {
	// Endpoint is the base URL of the etcd v3 HTTP gateway.
	Endpoint string `mapstructure:"endpoint" default:"http://localhost:2380"`
	// Namespace is the key prefix under which node records are stored.
	Namespace string `mapstructure:"namespace" default:"/gpu/nodes/"`
	// TimeoutSeconds bounds every store request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
