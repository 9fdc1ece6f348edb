// Package jnirt is the runtime side of generated JNI bindings. Generated
// wrappers and shims call into it; a cgo backend implements Runtime and
// registers itself with SetRuntime.
//
// An Env and every reference handed to a native method are valid only
// for the duration of that call. Do not store them.
package jnirt

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"
)

var ErrNoRuntime = errors.New("jnirt: no runtime registered")

// Ref is a JVM reference (jobject, jclass, jarray).
type Ref unsafe.Pointer

// MethodID is a resolved jmethodID.
type MethodID unsafe.Pointer

// Runtime performs the actual JNI calls. env is the raw JNIEnv pointer of
// the current native call. When the JVM has a pending exception after a
// call, implementations return an *Exception and leave it pending.
type Runtime interface {
	FindClass(env unsafe.Pointer, name string) (Ref, error)
	GetMethodID(env unsafe.Pointer, class Ref, name, sig string, static bool) (MethodID, error)
	NewObject(env unsafe.Pointer, class Ref, method MethodID, args []Value) (Ref, error)
	Call(env unsafe.Pointer, kind Kind, static bool, target Ref, method MethodID, args []Value) (Value, error)
	ThrowNew(env unsafe.Pointer, class, message string) error
	DeleteLocalRef(env unsafe.Pointer, ref Ref)
}

type runtimeHolder struct{ rt Runtime }

var registered atomic.Pointer[runtimeHolder]

// SetRuntime registers the runtime used by EnvFromPtr.
func SetRuntime(rt Runtime) {
	registered.Store(&runtimeHolder{rt: rt})
}

func currentRuntime() Runtime {
	if h := registered.Load(); h != nil {
		return h.rt
	}
	return nil
}

// Env is a JNIEnv bound to the runtime that services it.
type Env struct {
	ptr unsafe.Pointer
	rt  Runtime
}

func NewEnv(ptr unsafe.Pointer, rt Runtime) *Env {
	return &Env{ptr: ptr, rt: rt}
}

// EnvFromPtr wraps the JNIEnv pointer received by an exported shim using
// the registered runtime.
func EnvFromPtr(ptr unsafe.Pointer) *Env {
	return NewEnv(ptr, currentRuntime())
}

func (e *Env) Ptr() unsafe.Pointer {
	return e.ptr
}

func (e *Env) runtime() (Runtime, error) {
	if e == nil || e.rt == nil {
		return nil, ErrNoRuntime
	}
	return e.rt, nil
}

func (e *Env) require(class, name, sig string, static bool) (Ref, MethodID, error) {
	rt, err := e.runtime()
	if err != nil {
		return nil, nil, err
	}
	cls, err := rt.FindClass(e.ptr, class)
	if err != nil {
		return nil, nil, fmt.Errorf("jnirt: find class %s: %w", class, err)
	}
	id, err := rt.GetMethodID(e.ptr, cls, name, sig, static)
	if err != nil {
		return nil, nil, fmt.Errorf("jnirt: method %s.%s%s: %w", class, name, sig, err)
	}
	return cls, id, nil
}

// RequireClassMethod resolves an instance method or constructor.
func (e *Env) RequireClassMethod(class, name, sig string) (Ref, MethodID, error) {
	return e.require(class, name, sig, false)
}

func (e *Env) RequireStaticClassMethod(class, name, sig string) (Ref, MethodID, error) {
	return e.require(class, name, sig, true)
}

func (e *Env) NewObjectA(class Ref, method MethodID, args []Value) (Ref, error) {
	rt, err := e.runtime()
	if err != nil {
		return nil, err
	}
	return rt.NewObject(e.ptr, class, method, args)
}

// ThrowNew raises a new exception of class in the JVM. It is pending once
// the current native method returns.
func (e *Env) ThrowNew(class, message string) error {
	rt, err := e.runtime()
	if err != nil {
		return err
	}
	return rt.ThrowNew(e.ptr, class, message)
}

func (e *Env) DeleteLocalRef(ref Ref) {
	if ref == nil {
		return
	}
	if rt, err := e.runtime(); err == nil {
		rt.DeleteLocalRef(e.ptr, ref)
	}
}

// Exception reports a Java exception left pending by a call.
type Exception struct {
	Class   string
	Message string
}

func (e *Exception) Error() string {
	if e.Message == "" {
		return e.Class
	}
	return e.Class + ": " + e.Message
}
