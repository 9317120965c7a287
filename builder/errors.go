package builder

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedShape matches every UnsupportedShapeError.
	ErrUnsupportedShape = errors.New("builder: unsupported type shape")

	// ErrInvalidDescriptor matches every InvalidDescriptorError.
	ErrInvalidDescriptor = errors.New("builder: invalid type descriptor")

	// ErrTypeNotFound matches every TypeNotFoundError.
	ErrTypeNotFound = errors.New("builder: type not found")
)

// UnsupportedShapeError is returned when the input type is not a struct.
type UnsupportedShapeError struct {
	Type string
	Kind Kind
}

// Error implements the error interface.
func (e UnsupportedShapeError) Error() string {
	// Example: builder: "Shape" is a variant type, only structs get builders
	return "builder: " + strconv.Quote(e.Type) + " is a " + string(e.Kind) + " type, only structs get builders"
}

// Is lets errors.Is(err, ErrUnsupportedShape) match.
func (e UnsupportedShapeError) Is(target error) bool { return target == ErrUnsupportedShape }

// InvalidDescriptorError collects every problem found while reading a type.
type InvalidDescriptorError struct {
	Type     string
	Problems []string
}

// Error implements the error interface.
func (e InvalidDescriptorError) Error() string {
	return "builder: invalid descriptor for " + strconv.Quote(e.Type) + ": " + strings.Join(e.Problems, "; ")
}

// Is lets errors.Is(err, ErrInvalidDescriptor) match.
func (e InvalidDescriptorError) Is(target error) bool { return target == ErrInvalidDescriptor }

// TypeNotFoundError is returned when a Go file has no declaration for the requested type.
type TypeNotFoundError struct {
	Type string
	File string
}

// Error implements the error interface.
func (e TypeNotFoundError) Error() string {
	return "builder: type " + strconv.Quote(e.Type) + " not declared in " + e.File
}

// Is lets errors.Is(err, ErrTypeNotFound) match.
func (e TypeNotFoundError) Is(target error) bool { return target == ErrTypeNotFound }
