package dataprocessing

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMonthNamer(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		wantLang string
		month    time.Month
		want     string
	}{
		{"spanish", "es", "es", time.March, "Marzo"},
		{"spanish regional", "es-CL", "es", time.January, "Enero"},
		{"english", "en", "en", time.March, "March"},
		{"english regional", "en-US", "en", time.December, "December"},
		{"unavailable falls back to spanish", "zz", "es", time.March, "Marzo"},
		{"empty falls back to spanish", "", "es", time.September, "Septiembre"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			namer := NewMonthNamer(tt.lang, slog.Default())
			assert.Equal(t, tt.wantLang, namer.Language())
			assert.Equal(t, tt.want, namer.Name(tt.month))
		})
	}
}

func TestMonthNamer_AllMonthsDeterministic(t *testing.T) {
	namer := NewMonthNamer("es", slog.Default())
	want := []string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	for m := time.January; m <= time.December; m++ {
		assert.Equal(t, want[int(m)-1], namer.Name(m))
	}
}
