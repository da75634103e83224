package schema

import (
	"reflect"
	"testing"

	"github.com/rankwise/semgraph/pkg/common"
)

func TestJSONLD(t *testing.T) {
	tests := []struct {
		name   string
		entity common.Entity
		want   map[string]any
	}{
		{
			name:   "no schema type yields nil",
			entity: common.Entity{Name: "Plain"},
			want:   nil,
		},
		{
			name: "string properties pass through",
			entity: common.Entity{
				SchemaType: "LocalBusiness",
				SchemaProperties: map[string]string{
					"address":    "1 Main St",
					"priceRange": "$$",
				},
			},
			want: map[string]any{
				"@context":   "https://schema.org",
				"@type":      "LocalBusiness",
				"address":    "1 Main St",
				"priceRange": "$$",
			},
		},
		{
			name: "empty and whitespace values dropped",
			entity: common.Entity{
				SchemaType: "Person",
				SchemaProperties: map[string]string{
					"jobTitle": "",
					"worksFor": "   ",
					"name":     "Ada",
				},
			},
			want: map[string]any{
				"@context": "https://schema.org",
				"@type":    "Person",
				"name":     "Ada",
			},
		},
		{
			name: "json object values embedded as structures",
			entity: common.Entity{
				SchemaType: "Product",
				SchemaProperties: map[string]string{
					"offers": `{"@type":"Offer","price":"29.99"}`,
					"tags":   `["a","b"]`,
				},
			},
			want: map[string]any{
				"@context": "https://schema.org",
				"@type":    "Product",
				"offers":   map[string]any{"@type": "Offer", "price": "29.99"},
				"tags":     []any{"a", "b"},
			},
		},
		{
			name: "malformed json stays a string",
			entity: common.Entity{
				SchemaType: "Product",
				SchemaProperties: map[string]string{
					"offers": `{"broken":`,
				},
			},
			want: map[string]any{
				"@context": "https://schema.org",
				"@type":    "Product",
				"offers":   `{"broken":`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JSONLD(tt.entity)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("JSONLD() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
