package jnirt

import (
	"errors"
	"fmt"
	"unsafe"
)

type thrown struct {
	class   string
	message string
}

type fakeCall struct {
	kind   Kind
	static bool
	target Ref
	method MethodID
	args   []Value
}

// fakeRuntime hands out references into a private arena and records what
// generated code asks of it.
type fakeRuntime struct {
	arena   [16]byte
	classes map[string]Ref
	methods map[string]MethodID
	result  Value
	callErr error
	calls   []fakeCall
	thrown  []thrown
	deleted []Ref
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{
		classes: map[string]Ref{},
		methods: map[string]MethodID{},
	}
}

func (f *fakeRuntime) ref(i int) Ref {
	return Ref(unsafe.Pointer(&f.arena[i]))
}

func (f *fakeRuntime) FindClass(env unsafe.Pointer, name string) (Ref, error) {
	if ref, ok := f.classes[name]; ok {
		return ref, nil
	}
	return nil, &Exception{Class: "java/lang/NoClassDefFoundError", Message: name}
}

func (f *fakeRuntime) GetMethodID(env unsafe.Pointer, class Ref, name, sig string, static bool) (MethodID, error) {
	key := fmt.Sprintf("%v %s%s", static, name, sig)
	if id, ok := f.methods[key]; ok {
		return id, nil
	}
	return nil, &Exception{Class: "java/lang/NoSuchMethodError", Message: name}
}

func (f *fakeRuntime) NewObject(env unsafe.Pointer, class Ref, method MethodID, args []Value) (Ref, error) {
	f.calls = append(f.calls, fakeCall{kind: KindObject, target: class, method: method, args: args})
	return f.ref(8), f.callErr
}

func (f *fakeRuntime) Call(env unsafe.Pointer, kind Kind, static bool, target Ref, method MethodID, args []Value) (Value, error) {
	f.calls = append(f.calls, fakeCall{kind: kind, static: static, target: target, method: method, args: args})
	return f.result, f.callErr
}

func (f *fakeRuntime) ThrowNew(env unsafe.Pointer, class, message string) error {
	f.thrown = append(f.thrown, thrown{class: class, message: message})
	return nil
}

func (f *fakeRuntime) DeleteLocalRef(env unsafe.Pointer, ref Ref) {
	f.deleted = append(f.deleted, ref)
}

var errBoom = errors.New("boom")
