package jnirt

// call dispatches one Call*MethodA or CallStatic*MethodA and converts the
// result with get.
func call[T any](e *Env, kind Kind, static bool, target Ref, method MethodID, args []Value, get func(Value) T) (T, error) {
	var zero T
	rt, err := e.runtime()
	if err != nil {
		return zero, err
	}
	v, err := rt.Call(e.ptr, kind, static, target, method, args)
	if err != nil {
		return zero, err
	}
	return get(v), nil
}

func (e *Env) callVoid(static bool, target Ref, method MethodID, args []Value) error {
	_, err := call(e, KindVoid, static, target, method, args, func(Value) struct{} { return struct{}{} })
	return err
}

func (e *Env) CallVoidMethodA(obj Ref, method MethodID, args []Value) error {
	return e.callVoid(false, obj, method, args)
}

func (e *Env) CallStaticVoidMethodA(class Ref, method MethodID, args []Value) error {
	return e.callVoid(true, class, method, args)
}

func (e *Env) CallBooleanMethodA(obj Ref, method MethodID, args []Value) (bool, error) {
	return call(e, KindBoolean, false, obj, method, args, Value.Bool)
}

func (e *Env) CallStaticBooleanMethodA(class Ref, method MethodID, args []Value) (bool, error) {
	return call(e, KindBoolean, true, class, method, args, Value.Bool)
}

func (e *Env) CallByteMethodA(obj Ref, method MethodID, args []Value) (int8, error) {
	return call(e, KindByte, false, obj, method, args, Value.Byte)
}

func (e *Env) CallStaticByteMethodA(class Ref, method MethodID, args []Value) (int8, error) {
	return call(e, KindByte, true, class, method, args, Value.Byte)
}

func (e *Env) CallCharMethodA(obj Ref, method MethodID, args []Value) (uint16, error) {
	return call(e, KindChar, false, obj, method, args, Value.Char)
}

func (e *Env) CallStaticCharMethodA(class Ref, method MethodID, args []Value) (uint16, error) {
	return call(e, KindChar, true, class, method, args, Value.Char)
}

func (e *Env) CallShortMethodA(obj Ref, method MethodID, args []Value) (int16, error) {
	return call(e, KindShort, false, obj, method, args, Value.Short)
}

func (e *Env) CallStaticShortMethodA(class Ref, method MethodID, args []Value) (int16, error) {
	return call(e, KindShort, true, class, method, args, Value.Short)
}

func (e *Env) CallIntMethodA(obj Ref, method MethodID, args []Value) (int32, error) {
	return call(e, KindInt, false, obj, method, args, Value.Int)
}

func (e *Env) CallStaticIntMethodA(class Ref, method MethodID, args []Value) (int32, error) {
	return call(e, KindInt, true, class, method, args, Value.Int)
}

func (e *Env) CallLongMethodA(obj Ref, method MethodID, args []Value) (int64, error) {
	return call(e, KindLong, false, obj, method, args, Value.Long)
}

func (e *Env) CallStaticLongMethodA(class Ref, method MethodID, args []Value) (int64, error) {
	return call(e, KindLong, true, class, method, args, Value.Long)
}

func (e *Env) CallFloatMethodA(obj Ref, method MethodID, args []Value) (float32, error) {
	return call(e, KindFloat, false, obj, method, args, Value.Float)
}

func (e *Env) CallStaticFloatMethodA(class Ref, method MethodID, args []Value) (float32, error) {
	return call(e, KindFloat, true, class, method, args, Value.Float)
}

func (e *Env) CallDoubleMethodA(obj Ref, method MethodID, args []Value) (float64, error) {
	return call(e, KindDouble, false, obj, method, args, Value.Double)
}

func (e *Env) CallStaticDoubleMethodA(class Ref, method MethodID, args []Value) (float64, error) {
	return call(e, KindDouble, true, class, method, args, Value.Double)
}

func (e *Env) CallObjectMethodA(obj Ref, method MethodID, args []Value) (Ref, error) {
	return call(e, KindObject, false, obj, method, args, Value.Ref)
}

func (e *Env) CallStaticObjectMethodA(class Ref, method MethodID, args []Value) (Ref, error) {
	return call(e, KindObject, true, class, method, args, Value.Ref)
}
