// Package compose renders the docker-compose manifest for a resolved
// scenario.
//
// Rendering is a pure projection: the same resolved model always
// produces byte-identical output. The document is built as a yaml.Node
// tree so key order is explicit rather than map-iteration order.
package compose

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/star-xai-protocol/capsbench-leaderboard/internal/scenario"
)

// Render projects a resolved scenario into the compose document: one
// service per participant in document order, bracketed by the green
// control service and the results-collection client, all attached to
// one shared bridge network.
func Render(s *scenario.Scenario, cfg scenario.Settings) ([]byte, error) {
	services := mapping()

	addEntry(services, cfg.GreenService, greenService(&s.GreenAgent, cfg))
	for i := range s.Participants {
		p := &s.Participants[i]
		addEntry(services, p.Name, participantService(p, cfg))
	}
	addEntry(services, cfg.ClientService, clientService(s, cfg))

	networks := mapping()
	addEntry(networks, cfg.Network, mappingOf("driver", str("bridge")))

	root := mapping()
	addEntry(root, "services", services)
	addEntry(root, "networks", networks)
	root.HeadComment = "Auto-generated from scenario.toml"

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encoding compose manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding compose manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// greenService renders the primary control service. It binds the
// shared port directly and exposes /status for the readiness probe.
func greenService(a *scenario.Agent, cfg scenario.Settings) *yaml.Node {
	svc := mapping()
	addEntry(svc, "image", str(a.ResolvedImage))
	addEntry(svc, "platform", str(cfg.Platform))
	addEntry(svc, "container_name", str(cfg.GreenService))
	addEntry(svc, "command", commandNode(cfg.GreenService, cfg))
	addEntry(svc, "environment", envNode(a, cfg))
	addEntry(svc, "healthcheck", healthcheck(healthcheckSpec{
		path:        "/status",
		port:        cfg.Port,
		interval:    "5s",
		timeout:     "5s",
		retries:     20,
		startPeriod: "5s",
	}))
	addEntry(svc, "networks", networksNode(cfg))
	return svc
}

// participantService renders a secondary agent service. It starts only
// after the green service reports healthy.
func participantService(p *scenario.Agent, cfg scenario.Settings) *yaml.Node {
	svc := mapping()
	addEntry(svc, "image", str(p.ResolvedImage))
	addEntry(svc, "platform", str(cfg.Platform))
	addEntry(svc, "container_name", str(p.Name))
	addEntry(svc, "command", commandNode(p.Name, cfg))
	addEntry(svc, "environment", envNode(p, cfg))
	addEntry(svc, "healthcheck", healthcheck(healthcheckSpec{
		path:        "/.well-known/agent-card.json",
		port:        cfg.Port,
		interval:    "5s",
		timeout:     "3s",
		retries:     10,
		startPeriod: "30s",
	}))
	addEntry(svc, "depends_on", dependsOn(cfg.GreenService))
	addEntry(svc, "networks", networksNode(cfg))
	return svc
}

// clientService renders the results-collection client. It starts only
// after the green service and every participant are healthy, and is
// handed the transcoded scenario plus an output location.
func clientService(s *scenario.Scenario, cfg scenario.Settings) *yaml.Node {
	deps := []string{cfg.GreenService}
	for _, p := range s.Participants {
		deps = append(deps, p.Name)
	}

	svc := mapping()
	addEntry(svc, "image", str(cfg.ClientImage))
	addEntry(svc, "platform", str(cfg.Platform))
	addEntry(svc, "container_name", str(cfg.ClientService))
	addEntry(svc, "volumes", seq(
		str("./"+cfg.ScenarioOutPath+":/app/scenario.toml"),
		str("./output:/app/output"),
	))
	addEntry(svc, "command", flowSeq(quoted("scenario.toml"), quoted("output/results.json")))
	addEntry(svc, "depends_on", dependsOn(deps...))
	addEntry(svc, "networks", networksNode(cfg))
	return svc
}

// commandNode builds the agent startup command: bind the shared port on
// all interfaces and advertise the self-referential callback address.
func commandNode(name string, cfg scenario.Settings) *yaml.Node {
	return flowSeq(
		quoted("--host"), quoted("0.0.0.0"),
		quoted("--port"), quoted(strconv.Itoa(cfg.Port)),
		quoted("--card-url"), quoted(cfg.Endpoint(name)),
	)
}

// envNode merges the baseline env under the agent's own env (agent keys
// win) and renders KEY=value entries in sorted key order, so env
// insertion order in the source document never changes the output.
func envNode(a *scenario.Agent, cfg scenario.Settings) *yaml.Node {
	merged := make(map[string]string, len(cfg.BaselineEnv)+len(a.Env))
	for k, v := range cfg.BaselineEnv {
		merged[k] = v
	}
	for k, v := range a.Env {
		merged[k] = formatEnvValue(v)
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := seq()
	for _, k := range keys {
		env.Content = append(env.Content, str(k+"="+merged[k]))
	}
	return env
}

// formatEnvValue renders a TOML scalar the way it appears in an env
// assignment.
func formatEnvValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

type healthcheckSpec struct {
	path        string
	port        int
	interval    string
	timeout     string
	retries     int
	startPeriod string
}

func healthcheck(hc healthcheckSpec) *yaml.Node {
	probeURL := fmt.Sprintf("http://localhost:%d%s", hc.port, hc.path)
	node := mapping()
	addEntry(node, "test", flowSeq(quoted("CMD"), quoted("curl"), quoted("-f"), quoted(probeURL)))
	addEntry(node, "interval", str(hc.interval))
	addEntry(node, "timeout", str(hc.timeout))
	addEntry(node, "retries", intNode(hc.retries))
	addEntry(node, "start_period", str(hc.startPeriod))
	return node
}

// dependsOn renders start-order dependencies gated on health.
func dependsOn(services ...string) *yaml.Node {
	deps := mapping()
	for _, svc := range services {
		addEntry(deps, svc, mappingOf("condition", str("service_healthy")))
	}
	return deps
}

func networksNode(cfg scenario.Settings) *yaml.Node {
	return seq(str(cfg.Network))
}

// yaml.Node construction helpers.

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func quoted(s string) *yaml.Node {
	n := str(s)
	n.Style = yaml.DoubleQuotedStyle
	return n
}

func intNode(n int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(n)}
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func mappingOf(key string, value *yaml.Node) *yaml.Node {
	m := mapping()
	addEntry(m, key, value)
	return m
}

func addEntry(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, str(key), value)
}

func seq(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}

func flowSeq(items ...*yaml.Node) *yaml.Node {
	n := seq(items...)
	n.Style = yaml.FlowStyle
	return n
}
