package jnirt

import "unsafe"

// Object is a JVM reference together with the Env it belongs to.
// Generated wrapper types embed it.
type Object struct {
	env *Env
	ref Ref
}

func MakeObject(env *Env, ref Ref) Object {
	return Object{env: env, ref: ref}
}

func (o Object) Env() *Env {
	return o.env
}

func (o Object) JNIRef() Ref {
	return o.ref
}

// Bind replaces the reference. Adopt and Wrap use it to fill in wrapper
// types that embed Object.
func (o *Object) Bind(obj Object) {
	*o = obj
}

// Binder is satisfied by pointers to Object and to types embedding it.
type Binder[T any] interface {
	*T
	Bind(Object)
}

// Wrap turns a raw reference received from the JVM into a borrowed
// wrapper. A nil reference yields nil.
func Wrap[T any, P Binder[T]](env *Env, ptr unsafe.Pointer) *T {
	if ptr == nil {
		return nil
	}
	t := new(T)
	P(t).Bind(MakeObject(env, Ref(ptr)))
	return t
}

// ObjectOf wraps a raw reference as a plain Object.
func ObjectOf(env *Env, ptr unsafe.Pointer) *Object {
	return Wrap[Object](env, ptr)
}

// RefOf returns the reference held by a wrapper, or nil for a nil wrapper.
func RefOf[T any, P interface {
	*T
	JNIRef() Ref
}](p P) Ref {
	if (*T)(p) == nil {
		return nil
	}
	return p.JNIRef()
}

// Local is an owned local reference. Release deletes it; Leak hands it
// to the JVM, typically as a native method's return value.
type Local[T any] struct {
	value *T
	env   *Env
	ref   Ref
}

func (l *Local[T]) Get() *T {
	if l == nil {
		return nil
	}
	return l.value
}

func (l *Local[T]) Release() {
	if l == nil || l.ref == nil {
		return
	}
	l.env.DeleteLocalRef(l.ref)
	l.ref = nil
	l.value = nil
}

func (l *Local[T]) Leak() unsafe.Pointer {
	if l == nil {
		return nil
	}
	ref := l.ref
	l.ref = nil
	return unsafe.Pointer(ref)
}

// Adopt takes ownership of a reference returned by a call. It passes err
// through and maps a nil reference to a nil Local.
func Adopt[T any, P Binder[T]](env *Env, ref Ref, err error) (*Local[T], error) {
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, nil
	}
	t := new(T)
	P(t).Bind(MakeObject(env, ref))
	return &Local[T]{value: t, env: env, ref: ref}, nil
}

// NewLocal wraps an existing wrapper as an owned reference.
func NewLocal[T any, P interface {
	*T
	JNIRef() Ref
}](env *Env, p P) *Local[T] {
	if (*T)(p) == nil {
		return nil
	}
	return &Local[T]{value: (*T)(p), env: env, ref: p.JNIRef()}
}

type BooleanArray struct{ Object }
type ByteArray struct{ Object }
type CharArray struct{ Object }
type ShortArray struct{ Object }
type IntArray struct{ Object }
type LongArray struct{ Object }
type FloatArray struct{ Object }
type DoubleArray struct{ Object }
