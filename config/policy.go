package config

import "fmt"

type methodKey struct{ class, method string }

type signatureKey struct{ class, method, signature string }

// Tiers holds values keyed at three levels of specificity: a class, a
// method of a class, and one overload of a method. Lookups try the most
// specific level first.
type Tiers[V any] struct {
	classes    map[string]V
	methods    map[methodKey]V
	signatures map[signatureKey]V
}

func NewTiers[V any]() *Tiers[V] {
	return &Tiers[V]{
		classes:    map[string]V{},
		methods:    map[methodKey]V{},
		signatures: map[signatureKey]V{},
	}
}

func (t *Tiers[V]) Add(rule Rule, v V) error {
	switch {
	case rule.Class == "":
		return fmt.Errorf("missing class")
	case rule.Signature != "" && rule.Method == "":
		return fmt.Errorf("signature %s given without a method", rule.Signature)
	case rule.Signature != "":
		t.signatures[signatureKey{rule.Class, rule.Method, rule.Signature}] = v
	case rule.Method != "":
		t.methods[methodKey{rule.Class, rule.Method}] = v
	default:
		t.classes[rule.Class] = v
	}
	return nil
}

// Exact returns the value stored for exactly the tier rule names.
func (t *Tiers[V]) Exact(rule Rule) (V, bool) {
	var v V
	var ok bool
	switch {
	case rule.Signature != "":
		v, ok = t.signatures[signatureKey{rule.Class, rule.Method, rule.Signature}]
	case rule.Method != "":
		v, ok = t.methods[methodKey{rule.Class, rule.Method}]
	default:
		v, ok = t.classes[rule.Class]
	}
	return v, ok
}

func (t *Tiers[V]) Lookup(class, method, signature string) (V, bool) {
	if t == nil {
		var zero V
		return zero, false
	}
	if v, ok := t.signatures[signatureKey{class, method, signature}]; ok {
		return v, true
	}
	if v, ok := t.methods[methodKey{class, method}]; ok {
		return v, true
	}
	v, ok := t.classes[class]
	return v, ok
}
