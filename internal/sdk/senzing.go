//go:build senzing

package sdk

import (
	"context"
	"fmt"

	"github.com/senzing-garage/sz-sdk-go-core/szabstractfactory"
	"github.com/senzing-garage/sz-sdk-go/senzing"
)

type senzingClient struct {
	factory       *szabstractfactory.Szabstractfactory
	configManager senzing.SzConfigManager
	engine        senzing.SzEngine
}

// Open prepares an SDK instance. Components are created on first use.
func Open(ctx context.Context, opts Options) (Client, error) {
	verbose := senzing.SzNoLogging
	if opts.VerboseLogging {
		verbose = senzing.SzVerboseLogging
	}
	return &senzingClient{
		factory: &szabstractfactory.Szabstractfactory{
			ConfigID:       senzing.SzInitializeWithDefaultConfiguration,
			InstanceName:   opts.InstanceName,
			Settings:       opts.Settings,
			VerboseLogging: verbose,
		},
	}, nil
}

func (c *senzingClient) manager(ctx context.Context) (senzing.SzConfigManager, error) {
	if c.configManager != nil {
		return c.configManager, nil
	}
	cm, err := c.factory.CreateConfigManager(ctx)
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	c.configManager = cm
	return cm, nil
}

func (c *senzingClient) GetDefaultConfigID(ctx context.Context) (int64, error) {
	cm, err := c.manager(ctx)
	if err != nil {
		return 0, err
	}
	return cm.GetDefaultConfigID(ctx)
}

func (c *senzingClient) AddConfig(ctx context.Context, definition, comment string) (int64, error) {
	cm, err := c.manager(ctx)
	if err != nil {
		return 0, err
	}
	return cm.RegisterConfig(ctx, definition, comment)
}

func (c *senzingClient) SetDefaultConfigID(ctx context.Context, configID int64) error {
	cm, err := c.manager(ctx)
	if err != nil {
		return err
	}
	return cm.SetDefaultConfigID(ctx, configID)
}

func (c *senzingClient) CreateConfig(ctx context.Context) (ConfigHandle, error) {
	cm, err := c.manager(ctx)
	if err != nil {
		return ConfigHandle{}, err
	}
	cfg, err := cm.CreateConfigFromTemplate(ctx)
	if err != nil {
		return ConfigHandle{}, err
	}
	return NewConfigHandle(cfg), nil
}

func (c *senzingClient) ExportConfig(ctx context.Context, h ConfigHandle) (string, error) {
	cfg, ok := h.Ref().(senzing.SzConfig)
	if !ok {
		return "", fmt.Errorf("config handle holds %T, not a Senzing config", h.Ref())
	}
	return cfg.Export(ctx)
}

func (c *senzingClient) InitEngine(ctx context.Context) error {
	if c.engine != nil {
		return nil
	}
	engine, err := c.factory.CreateEngine(ctx)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	c.engine = engine
	return nil
}

func (c *senzingClient) PrimeEngine(ctx context.Context) error {
	if err := c.InitEngine(ctx); err != nil {
		return err
	}
	return c.engine.PrimeEngine(ctx)
}

func (c *senzingClient) GetVersion(ctx context.Context) (string, error) {
	product, err := c.factory.CreateProduct(ctx)
	if err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}
	return product.GetVersion(ctx)
}

func (c *senzingClient) Close(ctx context.Context) error {
	return c.factory.Destroy(ctx)
}
