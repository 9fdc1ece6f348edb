package jnirt

import (
	"errors"
	"fmt"
)

// RuntimeException is the class thrown for errors and panics that reach
// a native method boundary.
const RuntimeException = "java/lang/RuntimeException"

// Guard runs the body of an exported native method. A returned error or
// a panic becomes a pending Java exception and the zero value is returned
// to the JVM. Nothing unwinds past Guard.
func Guard[T any](env *Env, fn func() (T, error)) (result T) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			raise(env, panicError(r))
		}
	}()

	v, err := fn()
	if err != nil {
		var zero T
		raise(env, err)
		return zero
	}
	return v
}

// GuardVoid is Guard for methods returning void.
func GuardVoid(env *Env, fn func() error) {
	Guard(env, func() (struct{}, error) {
		return struct{}{}, fn()
	})
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}

// raise throws err unless it is already a pending Java exception.
func raise(env *Env, err error) {
	defer func() { _ = recover() }()

	var exc *Exception
	if errors.As(err, &exc) {
		return
	}
	_ = env.ThrowNew(RuntimeException, err.Error())
}
