package ptrie

import (
	"fmt"
	"reflect"
)

// attrDomain wraps a base domain and stores/reads the lookup key under a
// named struct field of each value, per the attr construction option.
// Values must be structs or pointers to structs; setKey requires a
// pointer so the field can be mutated in place.
//
// No repo in the retrieval pack wires a reflection-based generic
// attribute accessor - see DESIGN.md for why stdlib reflect is used here
// without pulling in a third-party struct-mapping library.
type attrDomain struct {
	base domain
	attr string
}

func (d attrDomain) createKey(raw any) (Key, error) {
	return d.base.createKey(raw)
}

func (d attrDomain) getKey(value any) (Key, error) {
	if mv, ok := value.(*multiValue); ok {
		return mv.key, nil
	}
	fv, err := d.fieldValue(value)
	if err != nil {
		return nil, err
	}
	return d.base.createKey(fv.Interface())
}

func (d attrDomain) setKey(value any, key Key) any {
	if mv, ok := value.(*multiValue); ok {
		mv.key = key
		return mv
	}
	fv, err := d.fieldValue(value)
	if err != nil || !fv.CanSet() {
		return value
	}
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(key.(string))
	default:
		if nk, ok := key.(numKey); ok {
			fv.SetUint(nk.value)
		}
	}
	return value
}

func (d attrDomain) fieldValue(value any) (reflect.Value, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: attribute-mode value must be a struct or *struct, got %T", ErrNoKey, value)
	}
	fv := rv.FieldByName(d.attr)
	if !fv.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: value has no field %q", ErrNoKey, d.attr)
	}
	return fv, nil
}

func (d attrDomain) match(a, b Key) int         { return d.base.match(a, b) }
func (d attrDomain) prefixOf(key Key, n int) Key { return d.base.prefixOf(key, n) }
func (d attrDomain) concat(a, b Key) Key         { return d.base.concat(a, b) }
func (d attrDomain) unitLen(key Key) int         { return d.base.unitLen(key) }
func (d attrDomain) charAt(key Key, i int) Unit  { return d.base.charAt(key, i) }
func (d attrDomain) emptyPrefix() Key            { return d.base.emptyPrefix() }
func (d attrDomain) newEdges() edgeTable         { return d.base.newEdges() }

func (d attrDomain) comparator(a, b any) (int, error) {
	ka, err := d.getKey(a)
	if err != nil {
		return 0, err
	}
	kb, err := d.getKey(b)
	if err != nil {
		return 0, err
	}
	return compareKeys(d, ka, kb), nil
}
