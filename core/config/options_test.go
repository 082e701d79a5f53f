package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"blank archive", func(o *Options) { o.Archive = "  " }},
		{"empty output", func(o *Options) { o.Output = "" }},
		{"unknown format", func(o *Options) { o.Format = "docx" }},
		{"unknown engine", func(o *Options) { o.Engine = "pandoc" }},
		{"unknown log level", func(o *Options) { o.LogLevel = "loud" }},
		{"unknown log format", func(o *Options) { o.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Default()
			tt.mutate(&o)
			assert.Error(t, o.Validate())
		})
	}
}
