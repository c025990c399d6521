package cmd

import (
	"testing"

	"github.com/MeKo-Tech/hexnoise/pkg/qrnoise"
)

func TestNewSampler(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		q, r    int32
		freq    int
		oct     int
		want    int
		wantErr bool
	}{
		{name: "rand", mode: modeRand, want: 30632},
		{name: "vnoise", mode: modeVNoise, q: 3, r: 1, freq: 4, want: 20579},
		{name: "vnoise disabled", mode: modeVNoise, freq: 0, want: 0},
		{name: "fbm regression", mode: modeFBM, freq: 4, oct: 1, want: 2964},
		{name: "fbm negative octaves", mode: modeFBM, freq: 4, oct: -1, wantErr: true},
		{name: "unknown mode", mode: "perlin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := newSampler(tt.mode, qrnoise.DefaultSeed, tt.freq, tt.oct)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newSampler() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if got := s(qrnoise.NewGenerator(), tt.q, tt.r); got != tt.want {
				t.Errorf("sample(%d, %d) = %d, want %d", tt.q, tt.r, got, tt.want)
			}
		})
	}
}
