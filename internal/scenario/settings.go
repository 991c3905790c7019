package scenario

import "fmt"

// Settings carries the fixed constants of the generation pipeline as an
// immutable value. Passing it explicitly (instead of package-level
// state) keeps the renderers pure and lets tests run in parallel
// without cross-contamination.
type Settings struct {
	// Port is the listening port shared by every agent service.
	Port int

	// BaselineEnv is merged under every agent's env block. Agent keys
	// override baseline keys.
	BaselineEnv map[string]string

	// Network names the shared bridge network.
	Network string

	// GreenService and ClientService name the two fixed infrastructure
	// services in the manifest.
	GreenService  string
	ClientService string

	// ClientImage is the results-collection client image.
	ClientImage string

	// Platform pins the container platform for every service.
	Platform string

	// Output paths, relative to the working directory.
	ComposePath     string
	ScenarioOutPath string
	EnvTemplatePath string

	// RegistryURL is the base URL of the agentbeats lookup service.
	RegistryURL string
}

// DefaultSettings returns the settings used by the capsbench CLI.
func DefaultSettings() Settings {
	return Settings{
		Port:            9009,
		BaselineEnv:     map[string]string{"PYTHONUNBUFFERED": "1"},
		Network:         "agent-network",
		GreenService:    "green-agent",
		ClientService:   "agentbeats-client",
		ClientImage:     "ghcr.io/agentbeats/agentbeats-client:v1.0.0",
		Platform:        "linux/amd64",
		ComposePath:     "docker-compose.yml",
		ScenarioOutPath: "a2a-scenario.toml",
		EnvTemplatePath: ".env.example",
		RegistryURL:     "https://agentbeats.dev/api/agents",
	}
}

// Endpoint builds the in-network callback address for a service name.
func (c Settings) Endpoint(service string) string {
	return fmt.Sprintf("http://%s:%d", service, c.Port)
}
