package result

import (
	"fmt"
	"sync"
)

// IDGenerator is a struct to hold a counter for generating the next
// incremental identifier.  Generators are page scoped, a new one is created
// for every page processed.
type IDGenerator struct {
	id     int64
	format string
	sync.Mutex
}

// NewIDGenerator returns a generator formatting each number with format,
// such as "addressregion%02d"
func NewIDGenerator(format string) *IDGenerator {
	return &IDGenerator{format: format}
}

// GetNext returns the identifier for the next incremental number, starting
// at 1
func (id *IDGenerator) GetNext() string {
	id.Lock()
	defer id.Unlock()
	id.id++
	return fmt.Sprintf(id.format, id.id)
}

// Count returns how many identifiers have been handed out
func (id *IDGenerator) Count() int64 {
	id.Lock()
	defer id.Unlock()
	return id.id
}
