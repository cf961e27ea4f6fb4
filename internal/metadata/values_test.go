package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/pgfix/pkg/pgfix"
)

func TestValues(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"empty", []string{}, nil},
		{"ordered", []string{"one.sql", "two.sql", "three.sql"}, []string{"one.sql", "two.sql", "three.sql"}},
		{"blank entries dropped", []string{" one.sql ", "", "  ", "two.sql"}, []string{"one.sql", "two.sql"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Values.Extract(pgfix.MetadataItem{Values: tt.in})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttributeList(t *testing.T) {
	extractor := AttributeList("scripts")

	item := pgfix.MetadataItem{Attributes: map[string]string{"scripts": "a.sql, b.sql,,c.sql"}}
	assert.Equal(t, []string{"a.sql", "b.sql", "c.sql"}, extractor.Extract(item))

	assert.Nil(t, extractor.Extract(pgfix.MetadataItem{}))
	assert.Nil(t, extractor.Extract(pgfix.MetadataItem{Attributes: map[string]string{"scripts": " "}}))
}
