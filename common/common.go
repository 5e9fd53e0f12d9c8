// Package common holds the small helpers shared by geom, eigen, and
// mesh: the vector type alias every other package builds on, a
// generic stack, and float equality.
package common

import "github.com/go-gl/mathgl/mgl32"

// Vec3 is the position/normal/direction type used throughout the
// module.
type Vec3 = mgl32.Vec3

// Stack is a minimal LIFO, grounded on the teacher's generic ring
// buffer/stack helpers but trimmed to the Push/Pop/Len surface actually
// exercised by explicit-stack tree walks.
type Stack[T any] struct {
	data []T
}

func (s *Stack[T]) Push(v T) {
	s.data = append(s.data, v)
}

func (s *Stack[T]) Pop() T {
	v := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return v
}

func (s *Stack[T]) Len() int {
	return len(s.data)
}

func (s *Stack[T]) Empty() bool {
	return len(s.data) == 0
}

// VecEqual reports whether a and b are equal within tolerance eps on
// every component.
func VecEqual(a, b Vec3, eps float32) bool {
	d := a.Sub(b)
	return d[0] <= eps && d[0] >= -eps &&
		d[1] <= eps && d[1] >= -eps &&
		d[2] <= eps && d[2] >= -eps
}
