package manifest

import (
	"bytes"
	"fmt"

	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"
)

// docSeparator splits documents in a multi-document YAML stream.
const docSeparator = "---\n"

// EncodeGroup serializes one component group as a multi-document YAML
// stream. sigs.k8s.io/yaml goes through the JSON tags, so typed objects
// come out in their wire shape and absent optional blocks (probes,
// ingress class) are omitted rather than rendered as nulls.
func EncodeGroup(group Group) ([]byte, error) {
	var buf bytes.Buffer
	for _, obj := range group.Objects {
		data, err := yaml.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("marshal %s object: %w", group.Component, err)
		}
		buf.WriteString(docSeparator)
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// Encode serializes the whole set as one multi-document YAML stream in
// group order.
func (s *Set) Encode() ([]byte, error) {
	var buf bytes.Buffer
	for _, group := range s.Groups {
		data, err := EncodeGroup(group)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// Objects flattens the set into a single resource list in group order.
func (s *Set) Objects() []runtime.Object {
	var objects []runtime.Object
	for _, group := range s.Groups {
		objects = append(objects, group.Objects...)
	}
	return objects
}
