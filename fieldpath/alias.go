package fieldpath

// AliasRule maps the natural path of a leaf to the name it is projected under.
type AliasRule map[string]string

// ApplyAlias returns a copy of fields where every field whose path matches the rule is renamed.
// Only the outbound Name changes; Path and Column stay as they are.
func ApplyAlias(fields Fields, rule AliasRule) Fields {
	if fields == nil {
		return nil
	}

	aliased := make(Fields, len(fields))
	copy(aliased, fields)

	for i, f := range aliased {
		if alias, ok := rule[f.Path]; ok && alias != "" {
			aliased[i].Name = alias
		}
	}

	return aliased
}
