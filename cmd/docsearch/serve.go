package main

import (
	"context"
	"errors"
	"fmt"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	// Stdout carries the protocol; nothing else may write to it.
	err := deps.Server.Run(deps.Ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
