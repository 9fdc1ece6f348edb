package jnirt

import (
	"errors"
	"math"
	"testing"
	"unsafe"
)

type widget struct{ Object }

func TestRequireClassMethod(t *testing.T) {
	rt := newFakeRuntime()
	rt.classes["com/example/Widget"] = rt.ref(0)
	rt.methods["false size()I"] = MethodID(rt.ref(1))
	rt.methods["true of(I)Lcom/example/Widget;"] = MethodID(rt.ref(2))
	env := NewEnv(nil, rt)

	t.Run("instance", func(t *testing.T) {
		cls, id, err := env.RequireClassMethod("com/example/Widget", "size", "()I")
		if err != nil {
			t.Fatalf("RequireClassMethod error: %v", err)
		}
		if cls != rt.ref(0) || id != MethodID(rt.ref(1)) {
			t.Error("RequireClassMethod returned the wrong handles")
		}
	})

	t.Run("static table", func(t *testing.T) {
		if _, _, err := env.RequireClassMethod("com/example/Widget", "of", "(I)Lcom/example/Widget;"); err == nil {
			t.Error("static method resolved through the instance table")
		}
		if _, _, err := env.RequireStaticClassMethod("com/example/Widget", "of", "(I)Lcom/example/Widget;"); err != nil {
			t.Errorf("RequireStaticClassMethod error: %v", err)
		}
	})

	t.Run("missing class", func(t *testing.T) {
		_, _, err := env.RequireClassMethod("com/example/Gone", "size", "()I")
		var exc *Exception
		if !errors.As(err, &exc) || exc.Class != "java/lang/NoClassDefFoundError" {
			t.Errorf("error = %v, want a NoClassDefFoundError exception", err)
		}
	})
}

func TestNoRuntime(t *testing.T) {
	env := NewEnv(nil, nil)
	if _, _, err := env.RequireClassMethod("a/B", "c", "()V"); !errors.Is(err, ErrNoRuntime) {
		t.Errorf("error = %v, want ErrNoRuntime", err)
	}
	if _, err := env.CallIntMethodA(nil, nil, nil); !errors.Is(err, ErrNoRuntime) {
		t.Errorf("error = %v, want ErrNoRuntime", err)
	}
}

func TestCallEntryPoints(t *testing.T) {
	rt := newFakeRuntime()
	env := NewEnv(nil, rt)

	rt.result = AsValue(int32(-7))
	got, err := env.CallIntMethodA(rt.ref(0), nil, []Value{AsValue(true)})
	if err != nil || got != -7 {
		t.Errorf("CallIntMethodA() = %d, %v, want -7, nil", got, err)
	}

	rt.result = AsValue(2.5)
	d, err := env.CallStaticDoubleMethodA(rt.ref(1), nil, nil)
	if err != nil || d != 2.5 {
		t.Errorf("CallStaticDoubleMethodA() = %v, %v, want 2.5, nil", d, err)
	}

	if len(rt.calls) != 2 {
		t.Fatalf("recorded %d calls, want 2", len(rt.calls))
	}
	if c := rt.calls[0]; c.kind != KindInt || c.static || len(c.args) != 1 || !c.args[0].Bool() {
		t.Errorf("first call = %+v", c)
	}
	if c := rt.calls[1]; c.kind != KindDouble || !c.static {
		t.Errorf("second call = %+v", c)
	}

	rt.callErr = errBoom
	if err := env.CallVoidMethodA(nil, nil, nil); !errors.Is(err, errBoom) {
		t.Errorf("CallVoidMethodA() error = %v, want errBoom", err)
	}
}

func TestAsValue(t *testing.T) {
	tests := []struct {
		in   any
		kind Kind
		bits uint64
	}{
		{true, KindBoolean, 1},
		{int8(-1), KindByte, math.MaxUint64},
		{uint16('x'), KindChar, 'x'},
		{int16(3), KindShort, 3},
		{int32(4), KindInt, 4},
		{int64(5), KindLong, 5},
		{float32(1.5), KindFloat, uint64(math.Float32bits(1.5))},
		{1.5, KindDouble, math.Float64bits(1.5)},
		{Ref(nil), KindObject, 0},
		{nil, KindObject, 0},
	}
	for _, tt := range tests {
		v := AsValue(tt.in)
		if v.Kind != tt.kind {
			t.Errorf("AsValue(%T).Kind = %v, want %v", tt.in, v.Kind, tt.kind)
		}
		if v.Bits() != tt.bits {
			t.Errorf("AsValue(%T).Bits() = %#x, want %#x", tt.in, v.Bits(), tt.bits)
		}
	}

	if got := AsValue(int8(-1)).Byte(); got != -1 {
		t.Errorf("Byte() = %d, want -1", got)
	}
	if got := AsValue(float32(1.5)).Float(); got != 1.5 {
		t.Errorf("Float() = %v, want 1.5", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("AsValue(string) did not panic")
		}
	}()
	AsValue("nope")
}

func TestReferences(t *testing.T) {
	rt := newFakeRuntime()
	env := NewEnv(nil, rt)

	if RefOf((*widget)(nil)) != nil {
		t.Error("RefOf(nil) != nil")
	}

	local, err := Adopt[widget](env, rt.ref(3), nil)
	if err != nil {
		t.Fatalf("Adopt error: %v", err)
	}
	w := local.Get()
	if w == nil || RefOf(w) != rt.ref(3) || w.Env() != env {
		t.Fatalf("Adopt produced %+v", w)
	}

	local.Release()
	if len(rt.deleted) != 1 || rt.deleted[0] != rt.ref(3) {
		t.Errorf("deleted = %v, want one delete of the adopted ref", rt.deleted)
	}
	local.Release()
	if len(rt.deleted) != 1 {
		t.Error("second Release deleted again")
	}

	if l, err := Adopt[widget](env, nil, nil); l != nil || err != nil {
		t.Errorf("Adopt(nil) = %v, %v, want nil, nil", l, err)
	}
	if _, err := Adopt[widget](env, rt.ref(3), errBoom); !errors.Is(err, errBoom) {
		t.Errorf("Adopt error = %v, want errBoom", err)
	}

	var nilLocal *Local[widget]
	if nilLocal.Leak() != nil || nilLocal.Get() != nil {
		t.Error("nil Local is not inert")
	}

	if ObjectOf(env, nil) != nil {
		t.Error("ObjectOf(nil) != nil")
	}
	arr := Wrap[IntArray](env, unsafe.Pointer(rt.ref(4)))
	if arr.JNIRef() != rt.ref(4) {
		t.Error("Wrap lost the reference")
	}
}
