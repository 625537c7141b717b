package descriptor

// The recursive composition layer: records containing other records are
// handled here, outside the field descriptors, by merging child
// specifications into the parent's surface and injecting child instances
// into the parent's constructor arguments.

// AllSpecs returns the argument specifications of this record and all of
// its descendants, flattened in declaration order. Fields without a
// specification (nested records, record containers, opted-out fields) are
// skipped.
func (r *Record) AllSpecs() []*Spec {
	var specs []*Spec

	for _, fld := range r.fields {
		if spec := fld.Spec(); spec != nil {
			specs = append(specs, spec)
		}
		if child, ok := r.children[fld.FieldName()]; ok {
			specs = append(specs, child.AllSpecs()...)
		}
	}

	return specs
}

// BuildAll runs the whole reverse pipeline over the raw parsed values:
// constructor arguments are extracted for this record and, recursively, for
// every child; child instances are built bottom-up and injected into the
// parent argument maps; finally one parent instance per requested count is
// constructed.
func (r *Record) BuildAll(raw map[string]any, instances int) ([]any, error) {
	argSets, err := r.ConstructorArguments(raw, instances)
	if err != nil {
		return nil, err
	}

	for _, fld := range r.fields {
		child, ok := r.children[fld.FieldName()]
		if !ok {
			continue
		}

		built, err := child.BuildAll(raw, instances)
		if err != nil {
			return nil, err
		}
		for i := range argSets {
			argSets[i][fld.FieldName()] = built[i]
		}
	}

	out := make([]any, 0, len(argSets))
	for _, args := range argSets {
		instance, err := r.Instantiate(args)
		if err != nil {
			return nil, err
		}
		out = append(out, instance)
	}

	return out, nil
}
