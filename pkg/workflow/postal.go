package workflow

import (
	"context"

	"github.com/dojouemura/go-matricula/pkg/validate"
)

// SetCEP records a postal code edit. When the normalized value transitions to
// exactly 8 digits, one lookup keyed by that value is launched in the
// background; its result is applied only if the key is still current when it
// lands, so a faster edit can never be clobbered by a slower lookup.
func (c *Controller) SetCEP(ctx context.Context, raw string) {
	c.mu.Lock()
	c.state.CEP = raw
	c.persistLocked()

	digits := validate.Digits(raw)
	if len(digits) != 8 {
		c.lookupCEP = ""
		c.mu.Unlock()
		return
	}
	if digits == c.lookupCEP {
		// Same key already triggered; reformatting must not re-query.
		c.mu.Unlock()
		return
	}
	c.lookupCEP = digits
	c.mu.Unlock()

	c.lookups.Add(1)
	go func() {
		defer c.lookups.Done()
		c.resolveCEP(ctx, digits)
	}()
}

func (c *Controller) resolveCEP(ctx context.Context, key string) {
	result, err := c.resolver.Resolve(ctx, key)
	if err != nil {
		// Silent degrade: the guardian types the address by hand.
		c.logger.Printf("workflow: cep %s lookup failed: %v", key, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if validate.Digits(c.state.CEP) != key {
		c.logger.Printf("workflow: cep %s lookup superseded, discarding", key)
		return
	}

	addr := c.state.Address
	if result.Street != "" {
		addr.Street = result.Street
	}
	if result.Neighborhood != "" {
		addr.Neighborhood = result.Neighborhood
	}
	addr.City = result.City
	addr.Region = result.Region
	c.state.Address = addr
	c.persistLocked()
}
