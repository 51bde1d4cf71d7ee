//go:build !linux

package system

import "errors"

var errNoKDMode = errors.New("console mode switching requires linux")

func (c *Console) SetGraphicsMode() error { return errNoKDMode }
func (c *Console) RestoreTextMode() error { return errNoKDMode }
