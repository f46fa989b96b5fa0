package config

import (
	"fmt"
	"time"

	"github.com/ekarabulut/failover/backoff"
	"github.com/ekarabulut/failover/logger"
	"github.com/ekarabulut/failover/policy"
	"github.com/ekarabulut/failover/util"
	"github.com/ekarabulut/failover/validation"
)

// RetryPolicyConfig is the file representation of one retry policy layer.
// All fields are optional; absent fields fall through to the next layer.
type RetryPolicyConfig struct {
	MaxRetry    *int    `yaml:"max_retry" mapstructure:"max_retry" json:"max_retry" validate:"omitempty,min=0"`
	BaseDelayMs *int    `yaml:"base_delay_ms" mapstructure:"base_delay_ms" json:"base_delay_ms" validate:"omitempty,min=0"`
	MaxDelayMs  *int    `yaml:"max_delay_ms" mapstructure:"max_delay_ms" json:"max_delay_ms" validate:"omitempty,min=0"`
	Backoff     *string `yaml:"backoff" mapstructure:"backoff" json:"backoff"`
}

// ToPolicy converts the file representation into a policy layer.
func (c *RetryPolicyConfig) ToPolicy() (policy.RetryPolicy, error) {
	var p policy.RetryPolicy
	if c == nil {
		return p, nil
	}

	p.MaxRetry = c.MaxRetry
	if c.BaseDelayMs != nil {
		p.BaseDelay = util.Ptr(time.Duration(*c.BaseDelayMs) * time.Millisecond)
	}
	if c.MaxDelayMs != nil {
		p.MaxDelay = util.Ptr(time.Duration(*c.MaxDelayMs) * time.Millisecond)
	}
	if c.Backoff != nil {
		kind, err := backoff.ParseKind(*c.Backoff)
		if err != nil {
			return p, err
		}
		p.Backoff = util.Ptr(kind)
	}
	return p, nil
}

// PoliciesConfig is the file representation of the layered policy config.
type PoliciesConfig struct {
	Default      *RetryPolicyConfig           `yaml:"default" mapstructure:"default" json:"default"`
	PerOperation map[string]RetryPolicyConfig `yaml:"per_operation" mapstructure:"per_operation" json:"per_operation"`
	PerProvider  map[string]RetryPolicyConfig `yaml:"per_provider" mapstructure:"per_provider" json:"per_provider"`
}

// ToPolicyConfig converts the file representation into policy layers.
func (c *PoliciesConfig) ToPolicyConfig() (policy.Config, error) {
	var out policy.Config

	if c.Default != nil {
		p, err := c.Default.ToPolicy()
		if err != nil {
			return out, fmt.Errorf("policies.default: %w", err)
		}
		out.Default = &p
	}
	if len(c.PerOperation) > 0 {
		out.PerOperation = make(map[string]policy.RetryPolicy, len(c.PerOperation))
		for op, pc := range c.PerOperation {
			p, err := pc.ToPolicy()
			if err != nil {
				return out, fmt.Errorf("policies.per_operation.%s: %w", op, err)
			}
			out.PerOperation[op] = p
		}
	}
	if len(c.PerProvider) > 0 {
		out.PerProvider = make(map[string]policy.RetryPolicy, len(c.PerProvider))
		for name, pc := range c.PerProvider {
			p, err := pc.ToPolicy()
			if err != nil {
				return out, fmt.Errorf("policies.per_provider.%s: %w", name, err)
			}
			out.PerProvider[name] = p
		}
	}
	return out, nil
}

// ProviderConfig declares one provider in priority order, optionally with
// an inline policy. The engine matches the name to a registered backend.
type ProviderConfig struct {
	Name   string             `yaml:"name" mapstructure:"name" json:"name" validate:"required"`
	Policy *RetryPolicyConfig `yaml:"policy" mapstructure:"policy" json:"policy"`
}

// Config is the full configuration surface consumed by a service that
// embeds the failover engine.
type Config struct {
	Name        string           `yaml:"name" mapstructure:"name" json:"name" validate:"required"`
	Environment string           `yaml:"environment" mapstructure:"environment" json:"environment" validate:"omitempty,oneof=development staging production"`
	Logging     logger.Config    `yaml:"logging" mapstructure:"logging" json:"logging"`
	Providers   []ProviderConfig `yaml:"providers" mapstructure:"providers" json:"providers" validate:"min=1,dive"`
	Policies    PoliciesConfig   `yaml:"policies" mapstructure:"policies" json:"policies"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the configuration, combining struct tag validation with
// semantic checks the tags cannot express.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if _, err := c.Policies.ToPolicyConfig(); err != nil {
		return err
	}
	for i, pc := range c.Providers {
		if pc.Policy == nil {
			continue
		}
		if _, err := pc.Policy.ToPolicy(); err != nil {
			return fmt.Errorf("providers[%d] (%s): %w", i, pc.Name, err)
		}
	}
	return nil
}

// ProviderOrder returns the declared provider names in priority order.
func (c *Config) ProviderOrder() []string {
	names := make([]string, len(c.Providers))
	for i, pc := range c.Providers {
		names[i] = pc.Name
	}
	return names
}

// InlinePolicy returns the converted inline policy for a provider name,
// or nil when none is declared.
func (c *Config) InlinePolicy(name string) (*policy.RetryPolicy, error) {
	for _, pc := range c.Providers {
		if pc.Name != name || pc.Policy == nil {
			continue
		}
		p, err := pc.Policy.ToPolicy()
		if err != nil {
			return nil, err
		}
		return &p, nil
	}
	return nil, nil
}
