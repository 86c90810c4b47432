package main

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/lanes/internal/shared"
	"github.com/urfave/cli/v3"
)

const redacted = "********"

// ConfigInit writes the default configuration to the --config path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	if path == "" {
		path = "config.toml"
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	r.logger.Info("config file created", "path", path)

	r.writePlain("✓ Wrote %s\n", path)
	r.writePlain("Point remote.base_url at your todo list API, or run 'lanes serve --seed' and use http://%s/todos\n", r.config.Server.Addr())
	return nil
}

// ConfigShow prints the effective configuration as TOML, with tokens redacted.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config := *r.config
	if config.Remote.Token != "" {
		config.Remote.Token = redacted
	}
	if config.Server.Token != "" {
		config.Server.Token = redacted
	}

	if err := toml.NewEncoder(r.output).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
