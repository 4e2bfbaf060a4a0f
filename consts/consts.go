// Package consts holds build-mode switches shared across the module.
package consts

// Mode_Debug gates the assert package and other debug-only checks.
// Flip to false for release builds where the checks should compile away.
const Mode_Debug = true
