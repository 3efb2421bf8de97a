package consul

import (
	"fmt"
	"log/slog"

	consulapi "github.com/hashicorp/consul/api"
)

// Service describes this process to the agent. HealthPath, when set, is
// polled over HTTP by the agent.
type Service struct {
	Name       string
	Host       string
	Port       int
	Tags       []string
	HealthPath string
}

// ID is stable per host so a restart replaces the old entry.
func (s Service) ID() string {
	return fmt.Sprintf("%s-%s-%d", s.Name, s.Host, s.Port)
}

func (s Service) registration() *consulapi.AgentServiceRegistration {
	reg := &consulapi.AgentServiceRegistration{
		ID:      s.ID(),
		Name:    s.Name,
		Address: s.Host,
		Port:    s.Port,
		Tags:    s.Tags,
	}
	if s.HealthPath != "" {
		reg.Check = &consulapi.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d%s", s.Host, s.Port, s.HealthPath),
			Interval:                       "10s",
			Timeout:                        "3s",
			DeregisterCriticalServiceAfter: "1m",
		}
	}
	return reg
}

// Register replaces any previous registration with the same id.
func (c *Client) Register(s Service) error {
	_ = c.api.Agent().ServiceDeregister(s.ID())

	if err := c.api.Agent().ServiceRegister(s.registration()); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}
	slog.Info("Registered with Consul", "service_id", s.ID())
	return nil
}

// Deregister removes a service from Consul
func (c *Client) Deregister(serviceID string) error {
	if err := c.api.Agent().ServiceDeregister(serviceID); err != nil {
		return fmt.Errorf("failed to deregister service: %w", err)
	}
	return nil
}
