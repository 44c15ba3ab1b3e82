package container

import (
	"errors"
)

// ErrNotEnoughData is returned by Get if the container holds less data than requested.
var ErrNotEnoughData = errors.New("container: not enough data to return")

// Container is []byte slice on steroids, allowing for quick data appending and fetching. It is used to gather entropy in chunks before it is handed over as a whole.
type Container struct {
	compartments [][]byte
	offset       int
}

// New creates a new container with an optional initial []byte slice. Data will NOT be copied.
func New(data ...[]byte) *Container {
	return &Container{
		compartments: data,
	}
}

// Append appends the given data. Data will NOT be copied.
func (c *Container) Append(data []byte) {
	c.compartments = append(c.compartments, data)
}

// Length returns the full length of all bytes held by the container.
func (c *Container) Length() (length int) {
	for i := c.offset; i < len(c.compartments); i++ {
		length += len(c.compartments[i])
	}
	return
}

// CompileData concatenates all bytes held by the container and returns it as one single []byte slice. Data will NOT be copied and is NOT consumed.
func (c *Container) CompileData() []byte {
	if len(c.compartments)-c.offset != 1 {
		newBuf := make([]byte, c.Length())
		copyBuf := newBuf
		for i := c.offset; i < len(c.compartments); i++ {
			copy(copyBuf, c.compartments[i])
			copyBuf = copyBuf[len(c.compartments[i]):]
		}
		c.compartments = [][]byte{newBuf}
		c.offset = 0
	}
	return c.compartments[c.offset]
}

// Get returns the given amount of bytes. Data MAY be copied and IS consumed.
func (c *Container) Get(n int) ([]byte, error) {
	buf := c.gather(n)
	if len(buf) < n {
		return nil, ErrNotEnoughData
	}
	c.skip(len(buf))
	return buf, nil
}

// GetMax returns as much as possible, but the given amount of bytes at maximum. Data MAY be copied and IS consumed.
func (c *Container) GetMax(n int) []byte {
	buf := c.gather(n)
	c.skip(len(buf))
	return buf
}

// Wipe overwrites all held data with zeros and empties the container. Held slices are modified in place.
func (c *Container) Wipe() {
	for i := c.offset; i < len(c.compartments); i++ {
		for j := range c.compartments[i] {
			c.compartments[i][j] = 0
		}
	}
	c.compartments = nil
	c.offset = 0
}

func (c *Container) gather(n int) []byte {
	if c.offset >= len(c.compartments) {
		return nil
	}
	// check if first slice holds enough data
	if len(c.compartments[c.offset]) >= n {
		return c.compartments[c.offset][:n]
	}
	// start gathering data
	slice := make([]byte, n)
	copySlice := slice
	n = 0
	for i := c.offset; i < len(c.compartments); i++ {
		copy(copySlice, c.compartments[i])
		if len(copySlice) <= len(c.compartments[i]) {
			n += len(copySlice)
			return slice[:n]
		}
		n += len(c.compartments[i])
		copySlice = copySlice[len(c.compartments[i]):]
	}
	return slice[:n]
}

func (c *Container) skip(n int) {
	for i := c.offset; i < len(c.compartments); i++ {
		if len(c.compartments[i]) <= n {
			n -= len(c.compartments[i])
			c.offset = i + 1
			c.compartments[i] = nil
			if n == 0 {
				return
			}
		} else {
			c.compartments[i] = c.compartments[i][n:]
			return
		}
	}
}
