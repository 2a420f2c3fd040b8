package ptrie

// multiValue collects values that share one key when the trie permits
// duplicate keys (uniqueKeys == false). Callers never see a *multiValue
// directly: Get and Delete always unwrap it to a plain []any.
type multiValue struct {
	values []any
	key    Key
}

// assign folds newVal into old, per spec:
//   - unique keys, or no prior value: overwrite
//   - old is already a MultiValue: append
//   - otherwise: wrap both into a fresh MultiValue and stamp its key
func assign(cfg *trieConfig, newVal, old any) any {
	if cfg.uniqueKeys || old == nil {
		return newVal
	}
	if mv, ok := old.(*multiValue); ok {
		mv.values = append(mv.values, newVal)
		return mv
	}
	mv := &multiValue{values: []any{old, newVal}}
	key, err := cfg.dom.getKey(newVal)
	if err != nil {
		key, _ = cfg.dom.getKey(old)
	}
	return cfg.dom.setKey(mv, key)
}

func countValues(v any) int {
	if v == nil {
		return 0
	}
	if mv, ok := v.(*multiValue); ok {
		return len(mv.values)
	}
	return 1
}
