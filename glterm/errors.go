package glterm

import (
	"errors"
	"fmt"
)

// Error kind sentinels. Every error this package returns wraps exactly
// one of these, so callers can group failures by kind with errors.Is
// without matching on message text: initialization problems (bad
// canvas/grid geometry), shader program problems (missing uniforms or
// blocks), GL resource creation, and malformed atlas data.
var (
	ErrInit     = errors.New("glterm: initialization failed")
	ErrShader   = errors.New("glterm: shader program invalid")
	ErrResource = errors.New("glterm: GL resource creation failed")
	ErrData     = errors.New("glterm: bad atlas data")
)

func initErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInit, fmt.Sprintf(format, args...))
}

func shaderErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrShader, fmt.Sprintf(format, args...))
}

func resourceErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrResource, fmt.Sprintf(format, args...))
}

func dataErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrData, fmt.Sprintf(format, args...))
}
