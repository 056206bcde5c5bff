package jmx

import (
	models "github.com/Schera-ole/jmx-telegraf/internal/model"
)

// PropertyTag maps a jvm system property onto a tag key.
type PropertyTag struct {
	Property string
	Tag      string
}

// PropertyTags are the system properties turned into dynamic tags, in
// emission order.
var PropertyTags = []PropertyTag{
	{Property: "tangosol.coherence.role", Tag: "nc_role"},
	{Property: "tangosol.coherence.process", Tag: "nc_process"},
	{Property: "tangosol.coherence.site", Tag: "website"},
}

// SystemPropertyTags derives the dynamic tags from a SystemProperties read.
// Both the tabular form (rows of key/value) and the map form (one composite
// field per property) are accepted.
func SystemPropertyTags(props models.AttributeValue) []string {
	found := make(map[string]string)
	switch props.Kind {
	case models.AttributeTabular:
		for _, row := range props.Rows {
			if k, v, ok := propertyRow(row); ok {
				found[k] = v
			}
		}
	case models.AttributeComposite:
		for _, f := range props.Fields {
			if vals := Flatten(f.Value); len(vals) > 0 {
				found[f.Name] = vals[len(vals)-1].Raw
			}
		}
	}

	var tags []string
	for _, pt := range PropertyTags {
		if v, ok := found[pt.Property]; ok {
			tags = append(tags, pt.Tag+"="+v)
		}
	}
	return tags
}

func propertyRow(row models.AttributeValue) (key, value string, ok bool) {
	k, kok := row.Lookup("key")
	v, vok := row.Lookup("value")
	if kok && vok {
		return k.Scalar.Raw, v.Scalar.Raw, true
	}

	vals := Flatten(row)
	if len(vals) < 2 {
		return "", "", false
	}
	return vals[0].Raw, vals[1].Raw, true
}
