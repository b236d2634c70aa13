package zoom

import (
	"math"
	"time"

	"github.com/akeil/zoom/pkg/gesture"
)

// Config holds the settings for a Zoom handler.
// It is fixed when the handler is created.
type Config struct {
	// AllowRotation enables two-finger rotation.
	// If false, pinching changes only the magnification.
	AllowRotation bool
	// MinZoom is the smallest allowed magnification.
	MinZoom float64
	// MaxZoom is the largest allowed magnification.
	// Zero means no upper bound.
	MaxZoom float64
	// Pan is reserved and currently has no effect;
	// single-finger panning is always enabled.
	Pan bool
	// DoubleTapWindow is the time in which a second tap resets the zoom.
	// Zero means the default of 300ms.
	DoubleTapWindow time.Duration
	// ResetDuration is the length of the reset animation.
	// Zero means the default of 100ms.
	ResetDuration time.Duration
}

// DefaultConfig allows rotation and does not limit the magnification.
func DefaultConfig() Config {
	return Config{
		AllowRotation:   true,
		MinZoom:         0,
		MaxZoom:         math.Inf(1),
		DoubleTapWindow: gesture.DefaultDoubleTapWindow,
		ResetDuration:   gesture.DefaultResetDuration,
	}
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.MaxZoom == 0 {
		c.MaxZoom = math.Inf(1)
	}
	if c.DoubleTapWindow == 0 {
		c.DoubleTapWindow = gesture.DefaultDoubleTapWindow
	}
	if c.ResetDuration == 0 {
		c.ResetDuration = gesture.DefaultResetDuration
	}
	return c
}

// Validate checks the configuration after applying defaults.
func (c Config) Validate() error {
	c = c.withDefaults()
	if math.IsNaN(c.MinZoom) || math.IsNaN(c.MaxZoom) {
		return NewValidationError("zoom bounds must be numbers")
	}
	if c.MinZoom < 0 {
		return NewValidationError("min zoom must not be negative, got %v", c.MinZoom)
	}
	if math.IsInf(c.MinZoom, 1) {
		return NewValidationError("min zoom must be finite")
	}
	if c.MaxZoom < c.MinZoom {
		return NewValidationError("max zoom %v is smaller than min zoom %v", c.MaxZoom, c.MinZoom)
	}
	if c.DoubleTapWindow < 0 {
		return NewValidationError("invalid double-tap window %v", c.DoubleTapWindow)
	}
	if c.ResetDuration < 0 {
		return NewValidationError("invalid reset duration %v", c.ResetDuration)
	}
	return nil
}

func (c Config) gesture() gesture.Config {
	return gesture.Config{
		AllowRotation: c.AllowRotation,
		MinZoom:       c.MinZoom,
		MaxZoom:       c.MaxZoom,
		ResetDuration: c.ResetDuration,
	}
}
