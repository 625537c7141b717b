package structargs

// Replace returns a copy of the struct instance pointed to by data with the
// given fields overridden, routed through the same materialization rules as
// command-line values. Nested record fields can be overridden with a map of
// their own field changes or addressed with dotted keys:
//
//	updated, err := structargs.Replace(cfg, map[string]any{
//		"Workers":     8,
//		"Server.Port": 9090,
//	})
//
// The original instance is left untouched.
func Replace(data any, changes map[string]any, opts ...Option) (any, error) {
	rec, err := Describe(data, opts...)
	if err != nil {
		return nil, err
	}

	return rec.Replace(data, changes)
}
