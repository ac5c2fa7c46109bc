package availability

import (
	"sync"
	"time"

	// Embedded IANA database, so results do not depend on the host zoneinfo.
	_ "time/tzdata"
)

// LocationLoader resolves IANA time zone names.
type LocationLoader interface {
	LoadLocation(name string) (*time.Location, error)
}

type LocationLoaderFunc func(name string) (*time.Location, error)

func (f LocationLoaderFunc) LoadLocation(name string) (*time.Location, error) {
	return f(name)
}

// SystemLocationLoader resolves names with time.LoadLocation.
var SystemLocationLoader = LocationLoaderFunc(time.LoadLocation)

// CachedLocationLoader memoises resolved locations.
// Locations are immutable, so they are shared across queries.
type CachedLocationLoader struct {
	loader    LocationLoader
	locations map[string]*time.Location
	mu        sync.RWMutex
}

var _ LocationLoader = &CachedLocationLoader{}

func NewCachedLocationLoader(loader LocationLoader) *CachedLocationLoader {
	return &CachedLocationLoader{
		loader:    loader,
		locations: make(map[string]*time.Location),
	}
}

func (c *CachedLocationLoader) LoadLocation(name string) (*time.Location, error) {
	c.mu.RLock()
	location, cached := c.locations[name]
	c.mu.RUnlock()

	if cached {
		return location,
			nil
	}

	location, errLoad := c.loader.LoadLocation(name)
	if errLoad != nil {
		return nil,
			errLoad
	}

	c.mu.Lock()
	c.locations[name] = location
	c.mu.Unlock()

	return location,
		nil
}
