package constants

// Request defaults
const (
	// DefaultBaseURL is the service every endpoint fragment is appended to
	// unless base_url is configured.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"

	// JSONContentType is sent with every POST body.
	JSONContentType = "application/json; charset=UTF-8"

	// RequestIDKey is the log attribute carrying the per-request id. It is never sent.
	RequestIDKey = "request_id"
)

// Output constants
const (
	// JSONIndent is used for stdout dumps and .json files.
	JSONIndent = "  "

	ExtJSON = ".json"
	ExtCSV  = ".csv"
)

// Exit codes returned by the restcli binary.
const (
	ExitOK          = 0
	ExitHTTPFailure = 1
	ExitInput       = 2
	ExitTransport   = 3
	ExitOutput      = 4
)

// Configuration constants
const (
	EnvPrefix       = "RESTCLI"
	DefaultLogLevel = "warn"
	DotEnvFile      = ".env"
)
