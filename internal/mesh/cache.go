package mesh

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// Kind identifies a procedural shape generator.
type Kind int

const (
	Sphere Kind = iota
	FlatSphere
	Torus
)

func (k Kind) String() string {
	switch k {
	case Sphere:
		return "sphere"
	case FlatSphere:
		return "flat_sphere"
	case Torus:
		return "torus"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Key describes a shape by generator and tessellation parameters. B is
// ignored by the sphere kinds.
type Key struct {
	Kind Kind
	A, B int
}

// Cache memoises tessellated meshes. Several bodies share the same
// tessellation (planets 3 and 4, for example), and the headless renderer
// rebuilds the scene once per frame it draws.
type Cache struct {
	lru *lru.Cache
}

func NewCache(size int) (*Cache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("mesh: cache: %w", err)
	}
	return &Cache{lru: c}, nil
}

// Get returns the cached mesh for key, building it on first use. Callers
// must treat the returned mesh as read-only.
func (c *Cache) Get(key Key) *Mesh {
	if v, ok := c.lru.Get(key); ok {
		return v.(*Mesh)
	}
	m := Build(key)
	c.lru.Add(key, m)
	return m
}

func (c *Cache) Len() int {
	return c.lru.Len()
}

// Build tessellates key without caching.
func Build(key Key) *Mesh {
	switch key.Kind {
	case FlatSphere:
		return NewSubdivisionSphere(key.A).FlatShaded()
	case Torus:
		return NewTorus(key.A, key.B)
	default:
		return NewSubdivisionSphere(key.A)
	}
}
