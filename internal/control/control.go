// Package control applies client commands to the running input model.
package control

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/soar/virtualinput/internal/bindings"
	"github.com/soar/virtualinput/internal/keyboard"
	"github.com/soar/virtualinput/internal/runner"
	"github.com/soar/virtualinput/internal/vinput"
)

const commandTimeout = 2 * time.Second

var (
	ErrNoJoystick = errors.New("no such joystick")
	ErrNoDefaults = errors.New("no saved defaults")
)

// Controller implements the client actions on top of a runner, the shared
// keyboard state and the bindings store.
type Controller struct {
	runner *runner.Runner
	keys   *keyboard.State
	store  *bindings.Store

	mu   sync.Mutex
	file *bindings.File
}

// New creates a Controller. file holds the bindings currently in effect.
func New(r *runner.Runner, keys *keyboard.State, store *bindings.Store, file *bindings.File) *Controller {
	if file == nil {
		file = &bindings.File{}
	}
	return &Controller{
		runner: r,
		keys:   keys,
		store:  store,
		file:   file,
	}
}

func (c *Controller) SetKey(source string, key vinput.Key, down bool) {
	c.keys.Set(source, key, down)
}

func (c *Controller) ReleaseKeys(source string) {
	c.keys.ReleaseAll(source)
}

// SetMode switches joystick j to mode and applies the saved profile for
// that mode, if there is one.
func (c *Controller) SetMode(j int, mode vinput.Mode) error {
	file := c.bindings()
	return c.do(func(reg *vinput.Registry) error {
		js := reg.GetJoystick(j)
		if js == nil {
			return fmt.Errorf("%w: %d", ErrNoJoystick, j)
		}
		js.SetMode(mode)
		if p, ok := file.Profile(j, mode); ok && !p.IsEmpty() {
			return p.Apply(js)
		}
		return nil
	})
}

// AddJoystick appends a joystick and applies its saved profile.
func (c *Controller) AddJoystick() error {
	file := c.bindings()
	return c.do(func(reg *vinput.Registry) error {
		reg.EnsureAtLeastOne()
		js, err := reg.AddJoystick()
		if err != nil {
			return err
		}
		i := reg.Len() - 1
		if i < len(file.Joysticks) {
			mode, err := vinput.ParseMode(file.Joysticks[i].Mode)
			if err != nil {
				return err
			}
			js.SetMode(mode)
			if p, _ := file.Profile(i, mode); !p.IsEmpty() {
				return p.Apply(js)
			}
		}
		return nil
	})
}

func (c *Controller) ClearJoysticks() error {
	return c.do(func(reg *vinput.Registry) error {
		reg.ClearJoysticks()
		return nil
	})
}

// SaveDefaults stores joystick j's current layout as the default for its
// current mode and writes the bindings file.
func (c *Controller) SaveDefaults(j int) error {
	var (
		mode    vinput.Mode
		profile bindings.Profile
	)
	err := c.do(func(reg *vinput.Registry) error {
		js := reg.GetJoystick(j)
		if js == nil {
			return fmt.Errorf("%w: %d", ErrNoJoystick, j)
		}
		mode = js.Mode()
		profile = bindings.Capture(js)
		return nil
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.file.Clone()
	next.Set(j, mode, profile)
	if err := c.store.Save(next); err != nil {
		return err
	}
	c.file = next
	log.Printf("Saved %s defaults for joystick %d to %s", mode, j, c.store.Path())
	return nil
}

// RestoreDefaults reapplies the saved profile for joystick j's current mode.
func (c *Controller) RestoreDefaults(j int) error {
	file := c.bindings()
	return c.do(func(reg *vinput.Registry) error {
		js := reg.GetJoystick(j)
		if js == nil {
			return fmt.Errorf("%w: %d", ErrNoJoystick, j)
		}
		p, ok := file.Profile(j, js.Mode())
		if !ok || p.IsEmpty() {
			return fmt.Errorf("%w for joystick %d (%s)", ErrNoDefaults, j, js.Mode())
		}
		return p.Apply(js)
	})
}

// Reload replaces the bindings in effect with f and rebuilds every joystick
// from it.
func (c *Controller) Reload(f *bindings.File) error {
	c.mu.Lock()
	c.file = f
	c.mu.Unlock()

	return c.do(f.Apply)
}

// Bindings returns a copy of the bindings in effect.
func (c *Controller) Bindings() *bindings.File {
	return c.bindings()
}

func (c *Controller) bindings() *bindings.File {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file.Clone()
}

func (c *Controller) do(cmd runner.Command) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	return c.runner.Do(ctx, cmd)
}
