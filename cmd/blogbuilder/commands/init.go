package commands

import (
	"fmt"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	fmt.Printf("Initialized site skeleton (config: %s)\n", root.Config)
	return nil
}
