package lili

// Config contains Lili backend settings.
type Config struct {
	// BaseURL is the API root; the website-chat path is appended to it.
	BaseURL string `env:"LILI_API_BASE" envDefault:"https://backend-lili-demo.limitless-tech.ai/api"`

	// WorkflowID selects the Lili workflow every request is routed to.
	WorkflowID string `env:"LILI_WORKFLOW_ID" envDefault:"213"`

	// Timeout is the upstream request timeout in seconds.
	Timeout int `env:"LILI_TIMEOUT_SECONDS" envDefault:"60"`
}
