package config

import (
	"errors"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestMapRejects(t *testing.T) {
	tests := []struct {
		name  string
		dto   YAMLConfig
		field string
	}{
		{"negative count", YAMLConfig{Generator: YAMLGenerator{Count: ptr(-1)}}, "generator.count"},
		{"negative delay", YAMLConfig{Generator: YAMLGenerator{Delay: ptr("-1s")}}, "generator.delay"},
		{"zero parallel", YAMLConfig{Measure: YAMLMeasure{Parallel: ptr(0)}}, "measure.parallel"},
		{"bad level", YAMLConfig{Log: YAMLLog{Level: ptr("loud")}}, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Map("x.yaml", tt.dto)
			if err == nil {
				t.Fatalf("expected error")
			}
			var e *Error
			if !errors.As(err, &e) || e.Field != tt.field {
				t.Fatalf("expected field %s, got %v", tt.field, err)
			}
		})
	}
}

func TestMapEmptyIsDefault(t *testing.T) {
	cfg, err := Map("x.yaml", YAMLConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}
