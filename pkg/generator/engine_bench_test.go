package generator

import (
	"testing"

	"github.com/getmockd/mockmaster/pkg/schema"
)

func benchSchema() schema.Schema {
	s := schema.Schema{
		{Key: "name", Type: schema.TypeName},
		{Key: "email", Type: schema.TypeEmail},
		{Key: "amount", Type: schema.TypeAmount, Options: &schema.FieldOptions{Min: schema.Float(1), Max: schema.Float(99)}},
		{Key: "plan", Type: schema.TypeEnum, Options: &schema.FieldOptions{Values: []string{"a", "b", "c"}}},
	}
	for _, t := range schema.AllFieldTypes() {
		s = append(s, schema.Field{Key: "f_" + string(t), Type: t})
	}
	return s
}

func BenchmarkGenerate_100Rows(b *testing.B) {
	s := benchSchema()
	e := New(WithSeed(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Generate(s, 100)
	}
}

func BenchmarkGenerate_Parallel(b *testing.B) {
	s := benchSchema()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		e := New()
		for pb.Next() {
			_ = e.Generate(s, 10)
		}
	})
}
